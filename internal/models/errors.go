package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a unique field (username, vehicle number,
	// route name, document number) is already taken.
	ErrConflict = errors.New("resource already exists")

	// ErrReferenced is returned when a record cannot be deleted because trips
	// or payments still point at it.
	ErrReferenced = errors.New("resource is referenced by other records")

	// ErrInvalidCredentials is returned when the username or password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInactiveAccount is returned when an INACTIVE user tries to log in.
	ErrInactiveAccount = errors.New("account is inactive")

	// ErrForbidden is returned when the caller lacks the role for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for requests that pass struct validation
	// but break a business rule (unknown vehicle type, inactive driver, ...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailDisabled is returned when a statement is requested but no sender is configured.
	ErrEmailDisabled = errors.New("email delivery is not configured")
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}
