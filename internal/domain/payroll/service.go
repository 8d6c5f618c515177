package payroll

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
)

// PayrollService owns the payroll cycle lifecycle. Every operation requires an admin caller.
type PayrollService interface {
	CreateCycle(ctx context.Context, actor auth.AuthContext, req CreateCycleRequest) (CycleResponse, error)
	GetCycle(ctx context.Context, actor auth.AuthContext, id string) (CycleResponse, error)
	ListCycles(ctx context.Context, actor auth.AuthContext, filter CycleFilter) (ListCycleResponse, error)
	ActivateCycle(ctx context.Context, actor auth.AuthContext, id string) (CycleResponse, error)
	CloseCycle(ctx context.Context, actor auth.AuthContext, id string) (CycleResponse, error)
	DeleteCycle(ctx context.Context, actor auth.AuthContext, id string) error
	ListDetails(ctx context.Context, actor auth.AuthContext, cycleID string) ([]DetailResponse, error)

	// Calculate computes and persists one detail per eligible employee.
	// Fails with ErrInvalidState unless active and ErrAlreadyCalculated when details exist.
	Calculate(ctx context.Context, actor auth.AuthContext, cycleID string) (CalculationSummary, error)

	// Reset deletes every detail of an active cycle.
	Reset(ctx context.Context, actor auth.AuthContext, cycleID string) (ResetResult, error)
}
