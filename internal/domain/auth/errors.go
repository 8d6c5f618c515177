package auth

import "errors"

var (
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrAdminRequired            = errors.New("admin role required")
	ErrEmployeeContextRequired  = errors.New("token is not bound to an employee")
	ErrMissingAuthenticationCtx = errors.New("authentication context missing")
)
