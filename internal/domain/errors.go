package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing records and, deliberately, records that
	// exist but are not visible to the requester on receipt lookups.
	ErrNotFound = errors.New("not found")

	// ErrPermission means the requester does not own the referenced record.
	ErrPermission = errors.New("permission denied")

	// ErrValidation marks a request rejected before any state mutation.
	ErrValidation = errors.New("validation failed")

	// ErrCardDeclined is the simulated gateway decline. Terminal; the caller
	// must initiate a new payment to retry.
	ErrCardDeclined = errors.New("card declined")
)

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
