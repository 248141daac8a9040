package workflows

import (
	"errors"
	"fmt"

	"resume-quality/internal/shared/apperr"
)

var (
	// ErrNotFound indicates the workflow does not exist.
	ErrNotFound = fmt.Errorf("workflow %w", apperr.ErrNotFound)
	// ErrWorkflowClosed rejects decisions on a completed workflow.
	ErrWorkflowClosed = fmt.Errorf("%w: workflow closed", apperr.ErrConflict)
	// ErrDuplicateChangeID rejects a create request that repeats a change id.
	ErrDuplicateChangeID = fmt.Errorf("%w: duplicate change id", apperr.ErrValidation)
	// ErrInvalidTransition signals a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid workflow transition")
)

// CodeChangeNotFound marks a decision naming a change the workflow does not have.
const CodeChangeNotFound = "change_not_found"

// ItemError reports one decision that could not be applied.
type ItemError struct {
	ChangeID string `json:"changeId"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}
