package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleStatus_Transitions(t *testing.T) {
	assert.True(t, StatusDraft.CanTransitionTo(StatusActive))
	assert.True(t, StatusActive.CanTransitionTo(StatusClosed))

	assert.False(t, StatusDraft.CanTransitionTo(StatusClosed))
	assert.False(t, StatusActive.CanTransitionTo(StatusDraft))
	assert.False(t, StatusClosed.CanTransitionTo(StatusActive))
	assert.False(t, StatusClosed.CanTransitionTo(StatusDraft))
}

func TestPayrollCycle_Transition(t *testing.T) {
	c := PayrollCycle{Status: StatusDraft}
	require.NoError(t, c.Transition("activate", StatusActive))
	assert.Equal(t, StatusActive, c.Status)

	err := c.Transition("activate", StatusActive)
	require.ErrorIs(t, err, ErrInvalidState)

	var se *StateError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "activate", se.Op)
	assert.Equal(t, StatusActive, se.Current)
	assert.Equal(t, "cannot activate payroll cycle in status active", err.Error())
}

func TestPayrollCycle_Window(t *testing.T) {
	c := PayrollCycle{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	start, end := c.Window(time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 15, 23, 59, 59, 999999999, time.UTC), end)

	jakarta := time.FixedZone("WIB", 7*3600)
	start, end = c.Window(jakarta)
	assert.Equal(t, time.Date(2024, 12, 31, 17, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, 1, 15, 16, 59, 59, 999999999, time.UTC), end.UTC())
}

func TestPayrollCycle_Deletable(t *testing.T) {
	assert.True(t, PayrollCycle{Status: StatusDraft}.Deletable())
	assert.False(t, PayrollCycle{Status: StatusActive}.Deletable())
	assert.True(t, PayrollCycle{Status: StatusClosed}.Deletable())
}

func TestPersistence_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("insert details", cause)
	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidState)
}

func TestCreateCycleRequest_Validate(t *testing.T) {
	req := CreateCycleRequest{Name: " January ", StartDate: "2025-01-01", EndDate: "2025-01-31"}
	require.NoError(t, req.Validate())
	start, end := req.Dates()
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, "January", req.Name)

	req = CreateCycleRequest{Name: "x", StartDate: "2025-02-01", EndDate: "2025-01-31"}
	assert.Error(t, req.Validate())

	same := CreateCycleRequest{Name: "one day", StartDate: "2025-02-01", EndDate: "2025-02-01"}
	assert.NoError(t, same.Validate())
}
