// Package errors provides structured error types for echart.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the three failure classes of the chart core:
//   - configuration rejection (INVALID_SIZE, INVALID_COUNT, DATASET_ATTACHED, ...)
//   - structural validation (LENGTH_MISMATCH, TOO_MANY_ITEMS, ITEM_OWNED, ...)
//   - layout preconditions (MISSING_DATASET, INSUFFICIENT_SERIES, INVALID_KIND)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLengthMismatch, "item has %d samples, abscissa has %d", n, m)
//	if errors.Is(err, errors.ErrCodeLengthMismatch) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKind   Code = "INVALID_KIND"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Chart configuration rejections
	ErrCodeInvalidSize     Code = "INVALID_SIZE"
	ErrCodeInvalidCount    Code = "INVALID_COUNT"
	ErrCodeDatasetAttached Code = "DATASET_ATTACHED"

	// Dataset structural validation
	ErrCodeAbscissaSet     Code = "ABSCISSA_ALREADY_SET"
	ErrCodeMissingAbscissa Code = "MISSING_ABSCISSA"
	ErrCodeLengthMismatch  Code = "LENGTH_MISMATCH"
	ErrCodeTooManyItems    Code = "TOO_MANY_ITEMS"
	ErrCodeItemOwned       Code = "ITEM_OWNED"

	// Layout preconditions
	ErrCodeMissingDataset     Code = "MISSING_DATASET"
	ErrCodeInsufficientSeries Code = "INSUFFICIENT_SERIES"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// IsRejection reports whether err is a configuration or structural rejection,
// i.e. the caller can retry with corrected input.
func IsRejection(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSize, ErrCodeInvalidCount, ErrCodeDatasetAttached,
		ErrCodeAbscissaSet, ErrCodeMissingAbscissa, ErrCodeLengthMismatch,
		ErrCodeTooManyItems, ErrCodeItemOwned:
		return true
	}
	return false
}
