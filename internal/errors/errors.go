// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidSignature indicates the webhook signature check failed.
	ErrInvalidSignature = errors.New("invalid request signature")

	// ErrMalformedPayload indicates the interaction payload could not be
	// parsed or is missing required fields for its kind.
	ErrMalformedPayload = errors.New("malformed interaction payload")

	// ErrUnhandledInteraction indicates an interaction kind the dispatcher
	// does not model.
	ErrUnhandledInteraction = errors.New("unhandled interaction type")

	// ErrUnhandledCommand indicates a command name with no registered handler.
	ErrUnhandledCommand = errors.New("unhandled command")

	// ErrMissingOption indicates a command option expected by a handler is absent.
	ErrMissingOption = errors.New("missing option")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// APIError represents an upstream HTTP API failure with context.
type APIError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error (endpoint=%s, status=%d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api error (endpoint=%s): %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new API error.
func NewAPIError(endpoint string, statusCode int, err error) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}
