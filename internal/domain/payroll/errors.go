package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrCycleNotFound          = errors.New("payroll cycle not found")
	ErrInvalidState           = errors.New("payroll cycle is not in a valid state for this operation")
	ErrAlreadyCalculated      = errors.New("payroll cycle already calculated, reset it first")
	ErrConcurrentModification = errors.New("payroll cycle is being modified by another request")
	ErrPersistenceFailure     = errors.New("payroll persistence failure")
)

// StateError reports an operation attempted while the cycle is in the wrong status.
// It matches ErrInvalidState under errors.Is.
type StateError struct {
	Op      string
	Current CycleStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s payroll cycle in status %s", e.Op, e.Current)
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

func newStateError(op string, current CycleStatus) error {
	return &StateError{Op: op, Current: current}
}

// RequireStatus returns a *StateError unless the cycle is in want.
func (c PayrollCycle) RequireStatus(op string, want CycleStatus) error {
	if c.Status != want {
		return newStateError(op, c.Status)
	}
	return nil
}

// Transition moves the cycle to next or returns a *StateError.
func (c *PayrollCycle) Transition(op string, next CycleStatus) error {
	if !c.Status.CanTransitionTo(next) {
		return newStateError(op, c.Status)
	}
	c.Status = next
	return nil
}

// Persistence wraps a storage failure so it matches ErrPersistenceFailure
// while keeping the driver error reachable.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceFailure, op, err)
}
