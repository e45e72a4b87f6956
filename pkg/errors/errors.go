// Package errors provides structured error types for ltd.
//
// This package defines error codes and types that enable:
//   - Consistent error reporting from the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Configuration errors (INVALID_INPUT, INVALID_SEED, DIMENSION_MISMATCH) are
// raised before any demand is generated. NO_PATH_FOUND and
// INFEASIBLE_EMBEDDING mean the computed topology cannot serve the demand it
// was built for. RENDERING_FAILURE is raised after the primary result has
// already been printed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDimensionMismatch, "%d nodes do not fill rows of %d", n, r)
//	if errors.Is(err, errors.ErrCodeDimensionMismatch) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNoPath, origErr, "route %d -> %d", from, to)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidSeed       Code = "INVALID_SEED"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Embedding errors
	ErrCodeNoPath     Code = "NO_PATH_FOUND"
	ErrCodeInfeasible Code = "INFEASIBLE_EMBEDDING"

	// Output errors
	ErrCodeRendering Code = "RENDERING_FAILURE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message without the code prefix, followed by
// the cause when one is present. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsConfig reports whether err is a configuration error that is raised
// before any computation starts.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidSeed, ErrCodeDimensionMismatch, ErrCodeInvalidPath:
		return true
	}
	return false
}

// ImbalanceError reports the first node whose flow balance violates the
// conservation tolerance.
type ImbalanceError struct {
	Node       int     // Offending node index
	Imbalance  float64 // Signed imbalance at Node
	Violations int     // Total number of violating nodes
}

// Error implements the error interface.
func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("node %d is unbalanced by %g (%d violating nodes)", e.Node, e.Imbalance, e.Violations)
}
