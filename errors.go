package psdkit

import (
	"errors"
	"fmt"
)

// Code classifies pipeline failures.
type Code string

// Error codes.
const (
	// CodeValidation marks missing required role layers or invalid arguments.
	CodeValidation Code = "validation"
	// CodeGeometry marks a degenerate crop or mask region.
	CodeGeometry Code = "geometry"
	// CodeEmptyInput marks an operation that needs visible pixels but got none.
	CodeEmptyInput Code = "empty_input"
	// CodeOutOfBounds marks a region lying entirely outside its buffer or canvas.
	CodeOutOfBounds Code = "out_of_bounds"
	// CodeEncodingOverflow marks a document the container format cannot hold.
	CodeEncodingOverflow Code = "encoding_overflow"
	// CodeIO marks a failure reported by storage or a decoder.
	CodeIO Code = "io"
)

// Error is a pipeline error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("psdkit: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("psdkit: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, &Error{Code: CodeValidation}) matches any validation error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Cause == nil && t.Code == e.Code
}

// NewError creates an Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an Error wrapping cause.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the code of the outermost *Error in err's chain.
// Returns the empty string if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MissingRolesError reports the role layers a LayerSet lacks.
type MissingRolesError struct {
	Missing []Role
}

// Error implements the error interface.
func (e *MissingRolesError) Error() string {
	return fmt.Sprintf("missing required layers: %v", e.Missing)
}

// DuplicateRolesError reports role layers that appear more than once.
type DuplicateRolesError struct {
	Duplicate []Role
}

// Error implements the error interface.
func (e *DuplicateRolesError) Error() string {
	return fmt.Sprintf("duplicated role layers: %v", e.Duplicate)
}
