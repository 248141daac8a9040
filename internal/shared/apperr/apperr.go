// Package apperr holds the error categories shared by every feature package.
// Feature sentinels wrap one of these so transports can map them without
// knowing each package.
package apperr

import "errors"

var (
	// ErrValidation marks malformed caller input. Not retryable.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a request that conflicts with current state, such as a closed workflow.
	ErrConflict = errors.New("conflict")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ValidationError carries per-field details and matches ErrValidation.
type ValidationError struct {
	Msg    string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return ErrValidation.Error()
	}
	return e.Msg
}

// Is reports ErrValidation as equivalent.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, issue string) error {
	return &ValidationError{Msg: field + " " + issue, Fields: []FieldError{{Field: field, Issue: issue}}}
}
