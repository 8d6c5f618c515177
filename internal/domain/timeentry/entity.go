package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeEntry struct {
	ID                string
	EmployeeID        string
	BranchID          string
	CheckInTime       time.Time
	CheckOutTime      *time.Time
	BreakMinutes      int
	TotalHours        *decimal.Decimal // written at check-out, informational only
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckInSelfie     *string
	CheckOutSelfie    *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
	BranchName   *string
}

// IsOpen reports whether the entry still awaits check-out.
func (e TimeEntry) IsOpen() bool {
	return e.CheckOutTime == nil
}

// WorkedDuration is (check_out - check_in) - break, floored at zero.
// Open entries have no worked duration.
func (e TimeEntry) WorkedDuration() time.Duration {
	if e.CheckOutTime == nil {
		return 0
	}
	d := e.CheckOutTime.Sub(e.CheckInTime) - time.Duration(e.BreakMinutes)*time.Minute
	if d < 0 {
		return 0
	}
	return d
}

// WorkedHours converts WorkedDuration to hours rounded to two places.
func (e TimeEntry) WorkedHours() decimal.Decimal {
	return HoursOf(e.WorkedDuration())
}

// hoursPrecision is the number of decimal places kept for unrounded hours.
const hoursPrecision = 16

// HoursOf converts a duration to hours rounded half-up to two places.
func HoursOf(d time.Duration) decimal.Decimal {
	return ExactHoursOf(d).Round(2)
}

// ExactHoursOf converts a duration to hours without rounding to cents. Pay is
// computed from this value.
func ExactHoursOf(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).
		DivRound(decimal.NewFromInt(int64(time.Hour)), hoursPrecision)
}

func (e TimeEntry) ToResponse() TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		EmployeeName:      e.EmployeeName,
		BranchID:          e.BranchID,
		BranchName:        e.BranchName,
		CheckInTime:       e.CheckInTime.Format(time.RFC3339),
		BreakMinutes:      e.BreakMinutes,
		TotalHours:        e.TotalHours,
		CheckInLatitude:   e.CheckInLatitude,
		CheckInLongitude:  e.CheckInLongitude,
		CheckOutLatitude:  e.CheckOutLatitude,
		CheckOutLongitude: e.CheckOutLongitude,
		CheckInSelfie:     e.CheckInSelfie,
		CheckOutSelfie:    e.CheckOutSelfie,
		Notes:             e.Notes,
		IsOpen:            e.IsOpen(),
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
	if e.CheckOutTime != nil {
		out := e.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}
