package payroll

import (
	"context"
	"time"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle PayrollCycle) (PayrollCycle, error)
	GetByID(ctx context.Context, id string) (PayrollCycle, error)

	// GetForUpdate reads the cycle and locks its row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (PayrollCycle, error)
	List(ctx context.Context, filter CycleFilter) ([]PayrollCycle, int64, error)
	UpdateStatus(ctx context.Context, id string, status CycleStatus) (PayrollCycle, error)
	SetCalculatedAt(ctx context.Context, id string, at *time.Time) error

	// Delete removes the cycle; its details cascade.
	Delete(ctx context.Context, id string) error
}

type DetailRepository interface {
	CountByCycle(ctx context.Context, cycleID string) (int, error)

	// CreateBatch inserts all details or none. A (cycle, employee) duplicate
	// maps to ErrAlreadyCalculated.
	CreateBatch(ctx context.Context, details []PayrollDetail) ([]PayrollDetail, error)
	DeleteByCycle(ctx context.Context, cycleID string) (int64, error)
	ListByCycle(ctx context.Context, cycleID string) ([]PayrollDetail, error)
}

// CycleLocker serializes state-changing operations on one cycle. fn runs inside
// a transaction that holds the cycle's lock; the ctx handed to fn carries it.
// If another holder has the lock, WithCycleLock returns ErrConcurrentModification
// without calling fn.
type CycleLocker interface {
	WithCycleLock(ctx context.Context, cycleID string, fn func(ctx context.Context) error) error
}
