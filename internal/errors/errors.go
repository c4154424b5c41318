// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingInput indicates a field required by the deal type was not supplied
	TypeMissingInput Type = "MISSING_INPUT"

	// TypeInvalidAmount indicates a supplied amount or rate did not parse to a positive number
	TypeInvalidAmount Type = "INVALID_AMOUNT"

	// TypeComputation is the catch-all for lookup or arithmetic failures
	TypeComputation Type = "COMPUTATION_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := fmt.Sprintf("[%s]", e.Type)
	if e.Field != "" {
		prefix = fmt.Sprintf("[%s] %s:", e.Type, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType checks if an error, or anything it wraps, is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := As(err); ok {
		return e.Type == t
	}
	return false
}

// MissingInput creates an error for an absent required field
func MissingInput(field string) *Error {
	return &Error{
		Type:    TypeMissingInput,
		Message: "required value was not supplied",
		Field:   field,
	}
}

// InvalidAmount creates an error for a value that is not a positive number
func InvalidAmount(field, value string) *Error {
	e := &Error{
		Type:    TypeInvalidAmount,
		Message: fmt.Sprintf("%q is not a positive number", value),
		Field:   field,
	}
	return e.WithContext("value", value)
}

// Computation creates a computation error
func Computation(message string, cause error) *Error {
	return Wrap(TypeComputation, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
