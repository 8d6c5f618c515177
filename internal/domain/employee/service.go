package employee

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

// EmployeeService manages employee records. All operations require an admin caller.
type EmployeeService interface {
	Create(ctx context.Context, actor auth.AuthContext, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, actor auth.AuthContext, id string) (EmployeeResponse, error)
	List(ctx context.Context, actor auth.AuthContext, filter EmployeeFilter) (ListEmployeeResponse, error)

	// Update is the only path through which hourly and daily rates change.
	Update(ctx context.Context, actor auth.AuthContext, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actor auth.AuthContext, id string) (EmployeeResponse, error)
}
