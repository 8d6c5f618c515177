package timeentry

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

type TimeEntryService interface {
	CheckIn(ctx context.Context, actor auth.AuthContext, req CheckInRequest) (TimeEntryResponse, error)
	CheckOut(ctx context.Context, actor auth.AuthContext, req CheckOutRequest) (TimeEntryResponse, error)

	// GetOpenEntry returns ErrNotCheckedIn when the caller has no open entry.
	GetOpenEntry(ctx context.Context, actor auth.AuthContext) (TimeEntryResponse, error)
	ListMine(ctx context.Context, actor auth.AuthContext, filter TimeEntryFilter) (ListTimeEntryResponse, error)

	// List is the admin view across employees.
	List(ctx context.Context, actor auth.AuthContext, filter TimeEntryFilter) (ListTimeEntryResponse, error)
}
