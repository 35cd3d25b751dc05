// Package errors provides the coded error type shared by the template
// engine, the pipeline, the CLI and the HTTP API.
//
// Every failure the engine can report carries a [Code]. Codes are stable
// strings that outer layers map to exit codes and HTTP statuses:
//
//	INVALID_SCALE           negative scale
//	ARITY                   wrong number of plaquette indices
//	CONFLICTING_CONSTRAINT  two relations imply different offsets
//	DISCONNECTED_TEMPLATE   a template is unreachable from template 0
//	UNSUPPORTED_TYPE        a value has no JSON encoding
//
// Layout files and the API add INVALID_INPUT, INVALID_FORMAT, INVALID_NAME,
// NOT_FOUND and INTERNAL_ERROR.
//
// Test for a code anywhere in a chain with [Is]; fmt.Errorf wrapping with
// %w is transparent:
//
//	if errors.Is(err, errors.ErrCodeArity) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

// Template engine codes.
const (
	ErrCodeInvalidScale          Code = "INVALID_SCALE"
	ErrCodeArity                 Code = "ARITY"
	ErrCodeConflictingConstraint Code = "CONFLICTING_CONSTRAINT"
	ErrCodeDisconnectedTemplate  Code = "DISCONNECTED_TEMPLATE"
	ErrCodeUnsupportedType       Code = "UNSUPPORTED_TYPE"
)

// Input, lookup and internal codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Client reports whether c blames the caller's layout or request rather
// than the running system.
func (c Code) Client() bool {
	switch c {
	case ErrCodeInvalidScale, ErrCodeArity, ErrCodeConflictingConstraint,
		ErrCodeDisconnectedTemplate, ErrCodeUnsupportedType,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidName:
		return true
	}
	return false
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Is reports whether any *Error in err's chain has code. An orchestrator
// wrapping a child's ARITY error as INVALID_INPUT still matches ARITY.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsClient reports whether err carries a [Code.Client] code.
func IsClient(err error) bool { return GetCode(err).Client() }

// UserMessage joins the messages of the coded errors in err's chain,
// leaving out the codes.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
