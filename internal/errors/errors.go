// Package errors defines the error taxonomy surfaced by a seed run.
// Every failure is one of a configuration, constraint or connection error;
// nothing is recovered locally.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeConfiguration       ErrorType = "configuration_error"
	ErrorTypeConstraintViolation ErrorType = "constraint_violation"
	ErrorTypeConnection          ErrorType = "connection_error"
	ErrorTypeInternal            ErrorType = "internal_error"
)

// SeedError is an error with a type, a message and the originating cause.
type SeedError struct {
	Type    ErrorType
	Message string
	Details string
	Cause   error
}

func (e *SeedError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SeedError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError reports invalid counts or options.
func NewConfigurationError(message string, details ...string) *SeedError {
	return newError(ErrorTypeConfiguration, message, nil, details)
}

// NewConstraintViolation wraps a uniqueness, foreign-key or not-null failure.
func NewConstraintViolation(message string, cause error, details ...string) *SeedError {
	return newError(ErrorTypeConstraintViolation, message, cause, details)
}

// NewConnectionError wraps a failure to reach the backing store.
func NewConnectionError(message string, cause error, details ...string) *SeedError {
	return newError(ErrorTypeConnection, message, cause, details)
}

func NewInternalError(message string, cause error, details ...string) *SeedError {
	return newError(ErrorTypeInternal, message, cause, details)
}

func newError(t ErrorType, message string, cause error, details []string) *SeedError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &SeedError{
		Type:    t,
		Message: message,
		Details: detail,
		Cause:   cause,
	}
}

// TypeOf returns the type of the first SeedError in err's chain, or "" when
// there is none.
func TypeOf(err error) ErrorType {
	var seedErr *SeedError
	if errors.As(err, &seedErr) {
		return seedErr.Type
	}
	return ""
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ErrorTypeConfiguration
}

func IsConstraintViolation(err error) bool {
	return TypeOf(err) == ErrorTypeConstraintViolation
}

func IsConnectionError(err error) bool {
	return TypeOf(err) == ErrorTypeConnection
}
