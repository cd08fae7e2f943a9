// Package errors provides structured errors for the Anchorplan engine.
//
// Every failure that crosses a package boundary carries a [Code], so
// the CLI and the HTTP API can map it to an exit status or a response
// body without matching on message strings. Codes group into INVALID_*
// for rejected input, *_NOT_FOUND for missing resources, and
// INTERNAL_ERROR / UNSUPPORTED for everything else.
//
//	err := errors.New(errors.ErrCodeInvalidOptions, "scale ratio must be positive, got %v", scale)
//	if errors.Is(err, errors.ErrCodeInvalidOptions) {
//	    // reject the request
//	}
//
// Wrap keeps the underlying cause in the chain, visible to errors.Is
// and errors.As from the standard library:
//
//	return errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode %s", path)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidWalls   Code = "INVALID_WALLS"
	ErrCodeInvalidPolygon Code = "INVALID_POLYGON"
	ErrCodeInvalidScope   Code = "INVALID_SCOPE"
	ErrCodeInvalidPlan    Code = "INVALID_PLAN"
	ErrCodeInvalidTuning  Code = "INVALID_TUNING"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRunNotFound  Code = "RUN_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a human-readable message and an optional
// underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" with the cause appended when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the standard errors helpers.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error from a code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap builds an Error that keeps cause in the chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given code. The outermost *Error
// in the chain decides.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns err's code, or the empty string when err carries no
// *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, suitable for
// terminal output. Plain errors pass through unchanged.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
