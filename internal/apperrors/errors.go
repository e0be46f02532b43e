package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthenticated indicates that an action was attempted without an active session.
var ErrUnauthenticated = errors.New("no active session")

// ErrInvalidCredentials indicates a login attempt with an unknown email, a wrong password or an inactive user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrConflict indicates that the resource is not in a state that allows the action
// (e.g. deciding an expense that was already decided, or a stale version stamp).
var ErrConflict = errors.New("conflict")

// AppError carries an HTTP status hint together with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
