package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store backends, services, and transport.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")

	// ErrMutationInFlight is returned when a second mutation targets a plant
	// that already has a store round-trip pending. Same-id mutations are not
	// queued; the caller retries once the first settles.
	ErrMutationInFlight = errors.New("mutation already in flight")
)

// FieldError describes a validation failure for one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
