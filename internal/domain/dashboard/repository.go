package dashboard

import (
	"context"
	"time"
)

// DashboardRepository defines the interface for dashboard data access.
// Hours are derived from check-in/out timestamps minus breaks.
type DashboardRepository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)

	// CountOpenEntries returns the number of employees currently checked in
	CountOpenEntries(ctx context.Context) (int64, error)

	GetSessionTotals(ctx context.Context, from, to time.Time) (*SessionTotals, error)
	GetHoursByBranch(ctx context.Context, from, to time.Time) ([]BranchHours, error)
}
