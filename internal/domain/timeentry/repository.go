package timeentry

import (
	"context"
	"time"
)

// Range selects entries whose check-in falls inside [From, To].
type Range struct {
	From time.Time
	To   time.Time
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetOpenByEmployee returns ErrTimeEntryNotFound when the employee has no open entry.
	GetOpenByEmployee(ctx context.Context, employeeID string) (TimeEntry, error)

	// CloseEntry writes the check-out columns of entry.
	CloseEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// List applies filter; Range is resolved by the caller in the payroll time zone.
	List(ctx context.Context, filter TimeEntryFilter, r *Range) ([]TimeEntry, int64, error)

	// ListCompletedInRange returns closed entries with check-in inside r, ordered by check-in.
	// An empty employeeIDs returns entries for every employee.
	ListCompletedInRange(ctx context.Context, r Range, employeeIDs []string) ([]TimeEntry, error)
}
