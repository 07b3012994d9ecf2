// Package apperror defines the error taxonomy shared by every layer.
//
// Three kinds of failure exist:
//   - ErrValidation:  a required input field is missing
//   - ErrNotFound:    a referenced record doesn't exist
//   - ErrPersistence: the store is unreachable or rejected a write
//
// Layers below the HTTP handlers never pick status codes; they return one of
// these and the handler decides how to render it.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("Validation Error")
	ErrPersistence = errors.New("persistence failure")
)

type AppError struct {
	Err     error  // sentinel: ErrNotFound, ErrValidation or ErrPersistence
	Cause   error  // Optional: underlying error (e.g. from the database driver)
	Message string // Human-readable error message, safe to show to callers
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches
// either one:
//
//	errors.Is(err, apperror.ErrPersistence) // true
//	errors.Is(err, context.DeadlineExceeded) // true if that was the cause
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NotFound reports that no resource exists for the requested id.
// The message is "<resource> not found", e.g. "User not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Field:   "id",
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Persistence wraps a store failure. message is what the caller sees;
// cause is only for logs.
func Persistence(message string, cause error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Cause:   cause,
		Message: message,
	}
}
