// File: api/errors.go
// License: Apache-2.0
//
// Common error types and error handling utilities for the library.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrConnectTimeout    = errors.New("connect timeout")
	ErrLoopClosed        = errors.New("event loop is closed")
	ErrRegistrationGone  = errors.New("registration cancelled")
	ErrNotSupported      = errors.New("operation not supported")
)

// ErrorCode classifies failure conditions surfaced by the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeConnectFailure
	ErrCodeSecureInit
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error is a structured error carrying a code and an optional platform cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a structured error without a cause.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a structured error around a platform-level cause.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is not
// a structured *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
