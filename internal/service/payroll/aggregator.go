package payroll

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
)

// Window is an inclusive range of check-in instants.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// HoursAggregate summarises one employee's completed sessions in a window.
type HoursAggregate struct {
	TotalHours   decimal.Decimal
	SessionCount int
	FirstCheckIn *time.Time
	LastCheckIn  *time.Time
}

// qualifies reports whether an entry counts toward payroll in w.
func qualifies(e timeentry.TimeEntry, w Window) bool {
	return e.CheckOutTime != nil && w.Contains(e.CheckInTime)
}

func sortedByCheckIn(entries []timeentry.TimeEntry) []timeentry.TimeEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b timeentry.TimeEntry) int {
		return a.CheckInTime.Compare(b.CheckInTime)
	})
	return sorted
}

// AggregateEntries sums worked time over the qualifying entries. Hours are
// derived from timestamps and kept unrounded; a stored total_hours value is ignored.
func AggregateEntries(entries []timeentry.TimeEntry, w Window) HoursAggregate {
	var (
		agg   HoursAggregate
		total time.Duration
	)
	for _, e := range sortedByCheckIn(entries) {
		if !qualifies(e, w) {
			continue
		}
		checkIn := e.CheckInTime
		if agg.FirstCheckIn == nil {
			agg.FirstCheckIn = &checkIn
		}
		agg.LastCheckIn = &checkIn
		agg.SessionCount++
		total += e.WorkedDuration()
	}
	agg.TotalHours = timeentry.ExactHoursOf(total)
	return agg
}

// AggregateByEmployee groups entries by employee and aggregates each group.
// Employees with no qualifying entry are absent from the result.
func AggregateByEmployee(entries []timeentry.TimeEntry, w Window) map[string]HoursAggregate {
	grouped := make(map[string][]timeentry.TimeEntry)
	for _, e := range entries {
		if qualifies(e, w) {
			grouped[e.EmployeeID] = append(grouped[e.EmployeeID], e)
		}
	}

	result := make(map[string]HoursAggregate, len(grouped))
	for employeeID, group := range grouped {
		result[employeeID] = AggregateEntries(group, w)
	}
	return result
}
