package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrSessionNotFound     = fmt.Errorf("%w: session", ErrNotFound)
	ErrRequirementNotFound = fmt.Errorf("%w: requirement", ErrNotFound)

	// Validation errors
	ErrEmptyClaimInput  = errors.New("claim input is empty")
	ErrUnknownOutput    = errors.New("unrecognized output type")
	ErrDecisionRequired = errors.New("user decision required before proceeding")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
