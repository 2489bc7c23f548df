// Package apperr defines structured error types for taskdeck commands.
// Errors carry a machine-readable code, a human-readable message,
// optional details, and (for repository failures) a wrapped cause.
package apperr

import (
	"fmt"
	"strconv"
)

// Error code constants — uppercase, underscore-separated, stable across minor versions.
const (
	ValidationError   = "VALIDATION_ERROR"
	TaskNotFound      = "TASK_NOT_FOUND"
	RepositoryError   = "REPOSITORY_ERROR"
	UnsupportedFormat = "UNSUPPORTED_FORMAT"
	InvalidInput      = "INVALID_INPUT"
	AmbiguousID       = "AMBIGUOUS_ID"
	ConfirmationReq   = "CONFIRMATION_REQUIRED"
	StoreNotFound     = "STORE_NOT_FOUND"
	StoreExists       = "STORE_ALREADY_EXISTS"
	InternalError     = "INTERNAL_ERROR"
)

// Error represents a structured taskdeck error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records the underlying cause. The cause is
// appended to the message and remains reachable via errors.Unwrap.
func Wrap(code string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...) + ": " + cause.Error(),
		cause:   cause,
	}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// Validation creates a VALIDATION_ERROR naming the offending field.
func Validation(field, message string) *Error {
	return New(ValidationError, message).
		WithDetails(map[string]any{"field": field})
}

// NotFound creates a TASK_NOT_FOUND error for the given task ID.
func NotFound(id string) *Error {
	return Newf(TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}

// Repository creates a REPOSITORY_ERROR wrapping the underlying cause.
// op names the failed operation, path the backing file.
func Repository(op, path string, cause error) *Error {
	return Wrap(RepositoryError, cause, "%s %s", op, path).
		WithDetails(map[string]any{"op": op, "path": path})
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
