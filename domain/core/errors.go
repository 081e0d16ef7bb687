package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Expected outcomes
	ErrNoMatch = errors.New("no records matched material")

	// Precondition violations
	ErrSchema     = errors.New("dataset schema invalid")
	ErrValidation = errors.New("invalid request")
)

// NewNoMatchError reports that a material name matched zero records.
// This is an expected outcome, not a failure.
func NewNoMatchError(material string) error {
	return fmt.Errorf("%w: %q", ErrNoMatch, material)
}

// NewSchemaError reports a required column missing from the dataset.
func NewSchemaError(column string) error {
	return fmt.Errorf("%w: required column %q not found", ErrSchema, column)
}

// NewValidationError reports an invalid request field.
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, reason)
}

// Error checking helpers
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
