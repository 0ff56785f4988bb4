// internal/platform/errors/errors.go

// Package errors provides error types and utilities for the contacts tool.
// It extends the standard errors package with context wrapping and the
// sentinels shared by stores, geocoders and the check engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios
var (
	// ErrNotFound indicates a contact or info item does not exist in the store
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownField indicates a field name missing from the contact field registry
	ErrUnknownField = errors.New("unknown contact field")

	// ErrScriptFailed indicates the OS scripting bridge exited with an error
	ErrScriptFailed = errors.New("script failed")

	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates a rate limit was exceeded
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrUnauthorized indicates the geocoding service rejected the API key
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a service is temporarily unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrCircuitOpen indicates calls are short-circuited after repeated failures
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrInvalidResponse indicates a response could not be parsed or was malformed
	ErrInvalidResponse = errors.New("invalid response")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
//
// Example:
//
//	if err := store.DeleteInfo(ctx, id, "phones", infoID); err != nil {
//	    return errors.Wrapf(err, "delete phone %s", infoID)
//	}
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// ScriptError describes a failed run of an external script.
// It matches ErrScriptFailed with Is.
type ScriptError struct {
	Script   string
	ExitCode int
	Stderr   string
}

func (e *ScriptError) Error() string {
	msg := fmt.Sprintf("script %s exited with code %d", e.Script, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Is makes ScriptError match the ErrScriptFailed sentinel.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScriptFailed
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsScriptFailed reports whether the error comes from a failed script run
func IsScriptFailed(err error) bool {
	return Is(err, ErrScriptFailed)
}

// IsRateLimit reports whether the error is a rate limit error
func IsRateLimit(err error) bool {
	return Is(err, ErrRateLimit)
}

// IsServiceUnavailable reports whether the error is a service unavailable error
func IsServiceUnavailable(err error) bool {
	return Is(err, ErrServiceUnavailable)
}

// IsRetryable reports whether a collaborator call may succeed when repeated.
func IsRetryable(err error) bool {
	return Is(err, ErrTimeout) || Is(err, ErrRateLimit) || Is(err, ErrServiceUnavailable)
}
