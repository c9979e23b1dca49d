package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request or entity fails validation.
	// ValidationError values wrap it so callers can match with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskID is returned when a task has no identifier.
	ErrEmptyTaskID = fmt.Errorf("%w: task_id cannot be empty", ErrValidation)
)

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
