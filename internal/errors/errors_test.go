// Package errors provides unit tests for error code handling.
package errors

import (
	stderrors "errors"
	"testing"
)

// TestAppError_Error verifies message formatting with and without a cause.
func TestAppError_Error(t *testing.T) {
	plain := New(ErrParse, "invalid JSON")
	if plain.Error() != "[PARSE_ERROR] invalid JSON" {
		t.Errorf("Error() = %q", plain.Error())
	}

	cause := stderrors.New("unexpected end of input")
	wrapped := Wrap(ErrParse, "invalid JSON", cause)
	if wrapped.Error() != "[PARSE_ERROR] invalid JSON: unexpected end of input" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

// TestAppError_Unwrap verifies errors.Is reaches the cause.
func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := Wrap(ErrStorageUnavailable, "save failed", cause)

	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

// TestIs verifies code matching.
func TestIs(t *testing.T) {
	err := New(ErrSchema, "expected an array")

	if !Is(err, ErrSchema) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrParse) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrSchema) {
		t.Error("Is() = true for non-AppError")
	}
}

// TestMessage verifies the human-readable extraction.
func TestMessage(t *testing.T) {
	if got := Message(New(ErrEmptyImport, "no valid entries found")); got != "no valid entries found" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}
