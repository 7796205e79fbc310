package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application errors for the CLI surface.
type ErrorCode string

const (
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeBindFailed   ErrorCode = "BIND_FAILED"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError is an error with a stable code and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError reports malformed user-supplied input.
func NewInvalidInputError(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewBindFailedError reports a listener that could not be bound. This is the
// one startup condition that aborts the process loudly.
func NewBindFailedError(message string, cause error) *AppError {
	return &AppError{Code: CodeBindFailed, Message: message, Err: cause}
}

// NewInternalError reports an unexpected internal failure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: cause}
}

// IsCode reports whether err wraps an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
