// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported standard library helpers so callers only need this package.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
	New  = errors.New
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyText indicates the request text is empty after trimming.
	ErrEmptyText = errors.New("empty text")

	// ErrTextTooLong indicates the request text exceeds the maximum length.
	ErrTextTooLong = errors.New("text too long")

	// ErrClassifierUnavailable indicates a mandatory classifier could not
	// produce a result. Requests cannot partially succeed without one.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrEmptyQuery indicates a literature search was attempted with an empty query.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

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

// InferenceError represents a model inference failure with context.
type InferenceError struct {
	Model      string
	StatusCode int
	Err        error
}

func (e *InferenceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("inference error (model=%s, status=%d): %v", e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("inference error (model=%s): %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// NewInferenceError creates a new inference error.
func NewInferenceError(model string, statusCode int, err error) *InferenceError {
	return &InferenceError{
		Model:      model,
		StatusCode: statusCode,
		Err:        err,
	}
}
