// Package errors provides error code definitions for Rulebook.
package errors

import "fmt"

// ErrorCode represents a unique error code surfaced to the UI.
type ErrorCode string

const (
	// General errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrInvalid  ErrorCode = "INVALID_INPUT"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Snapshot import errors
	ErrParse       ErrorCode = "PARSE_ERROR"
	ErrSchema      ErrorCode = "SCHEMA_ERROR"
	ErrEmptyImport ErrorCode = "EMPTY_IMPORT"

	// Persistence errors
	ErrStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error is of a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Message returns the human-readable message for an error. For an
// AppError this is the message without the code prefix; anything else
// falls back to Error().
func Message(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
