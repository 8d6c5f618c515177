package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var stateErr *payroll.StateError
	if errors.As(err, &stateErr) {
		ErrorWithCode(w, http.StatusConflict, "INVALID_STATE", stateErr.Error(), map[string]string{
			"op":     stateErr.Op,
			"status": string(stateErr.Current),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingAuthenticationCtx):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin role required")
	case errors.Is(err, auth.ErrEmployeeContextRequired):
		Forbidden(w, "Token is not bound to an employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Payroll cycle not found")
	case errors.Is(err, payroll.ErrInvalidState):
		ErrorWithCode(w, http.StatusConflict, "INVALID_STATE", err.Error(), nil)
	case errors.Is(err, payroll.ErrAlreadyCalculated):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_CALCULATED", "Payroll cycle already calculated, reset it first", nil)
	case errors.Is(err, payroll.ErrConcurrentModification):
		ErrorWithCode(w, http.StatusConflict, "CONCURRENT_MODIFICATION", "Payroll cycle is being modified by another request", nil)
	case errors.Is(err, payroll.ErrPersistenceFailure):
		ErrorWithCode(w, http.StatusInternalServerError, "PERSISTENCE_FAILURE", "Payroll data could not be saved", nil)

	// Time entry domain errors
	case errors.Is(err, timeentry.ErrAlreadyCheckedIn):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_CHECKED_IN", "You already have an open time entry", nil)
	case errors.Is(err, timeentry.ErrNotCheckedIn):
		ErrorWithCode(w, http.StatusConflict, "NOT_CHECKED_IN", "You have not checked in yet", nil)
	case errors.Is(err, timeentry.ErrOutsideAllowedRadius):
		ErrorWithCode(w, http.StatusForbidden, "OUTSIDE_ALLOWED_RADIUS", "You are outside the allowed radius", nil)
	case errors.Is(err, timeentry.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, timeentry.ErrBreakExceedsDuration):
		BadRequest(w, "Break duration exceeds elapsed time", nil)
	case errors.Is(err, timeentry.ErrTimeEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, file.ErrInvalidImageType):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		BadRequest(w, "Cannot deactivate your own employee record", nil)
	case errors.Is(err, employee.ErrBranchNotFound):
		BadRequest(w, "Assigned branch not found", map[string]string{"branch_id": "branch not found"})

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch with this name already exists")
	case errors.Is(err, branch.ErrBranchInUse):
		Conflict(w, "Branch is referenced by employees or time entries")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
