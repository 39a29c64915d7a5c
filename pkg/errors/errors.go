// Package errors provides structured error types for cygraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - UNSUPPORTED_*: values the wire format cannot represent
//   - MALFORMED_*: structurally invalid input tables
//   - INVALID_*: input validation failures
//   - NOT_FOUND*: resource not found
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedHeader, "edge table missing %s column", ":END_ID")
//	if errors.Is(err, errors.ErrCodeMalformedHeader) {
//	    // Handle decode failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTypeMismatch, origErr, "row %d column %q", row, col)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Encoding errors
	ErrCodeUnsupportedType Code = "UNSUPPORTED_TYPE"

	// Decoding errors
	ErrCodeMalformedHeader Code = "MALFORMED_HEADER"
	ErrCodeMalformedRow    Code = "MALFORMED_ROW"
	ErrCodeTypeMismatch    Code = "TYPE_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeGraphNotFound Code = "GRAPH_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
