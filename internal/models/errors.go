package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine. Not-found conditions on read and
// mutate paths return nil results instead of ErrNotFound wherever the caller
// can treat "nothing to report" as a safe no-op; handlers use ErrNotFound
// only where an explicit 404 is wanted.
var (
	// ErrValidation marks caller input that is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedAction marks an approved action type with no executor.
	// This is a programming defect, never expected in normal operation.
	ErrUnsupportedAction = errors.New("unsupported action type")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
