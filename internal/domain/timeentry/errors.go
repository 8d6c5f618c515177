package timeentry

import "errors"

var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn     = errors.New("you already have an open time entry")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrBreakExceedsDuration = errors.New("break duration exceeds elapsed time")
	ErrEmployeeInactive     = errors.New("employee is inactive")

	// General errors
	ErrTimeEntryNotFound = errors.New("time entry not found")
)
