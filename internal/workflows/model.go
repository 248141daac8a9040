package workflows

import "time"

// Status is the lifecycle state of a workflow.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusCompleted Status = "completed"
)

// Approval is the decision state of one suggested change.
type Approval string

const (
	ApprovalPending  Approval = "pending"
	ApprovalApproved Approval = "approved"
	ApprovalRejected Approval = "rejected"
)

// Impact grades how much a change matters.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// SuggestedChange is one original-to-suggested text edit awaiting a human decision.
type SuggestedChange struct {
	ID         string     `json:"id" validate:"omitempty,max=64"`
	Category   string     `json:"category" validate:"required,max=64"`
	Original   string     `json:"original" validate:"max=20000"`
	Suggested  string     `json:"suggested" validate:"max=20000"`
	Reason     string     `json:"reason" validate:"max=2000"`
	Impact     Impact     `json:"impact" validate:"required,oneof=low medium high"`
	Confidence int        `json:"confidence" validate:"min=0,max=100"`
	Approval   Approval   `json:"approval"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
}

// Workflow tracks decisions over a set of suggested changes.
type Workflow struct {
	ID          string            `json:"id"`
	Status      Status            `json:"status"`
	Changes     []SuggestedChange `json:"changes"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}

// Decided counts changes that are no longer pending.
func (w Workflow) Decided() int {
	n := 0
	for _, c := range w.Changes {
		if c.Approval != ApprovalPending {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, so callers can mutate it without touching stored state.
func (w Workflow) Clone() Workflow {
	out := w
	out.Changes = make([]SuggestedChange, len(w.Changes))
	for i, c := range w.Changes {
		if c.DecidedAt != nil {
			t := *c.DecidedAt
			c.DecidedAt = &t
		}
		out.Changes[i] = c
	}
	if w.CompletedAt != nil {
		t := *w.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// CreateRequest opens a workflow over a set of changes.
type CreateRequest struct {
	Changes []SuggestedChange `json:"changes" validate:"required,min=1,max=500,dive"`
}

// Decision approves or rejects one change.
type Decision struct {
	ChangeID string `json:"changeId" validate:"required,max=64"`
	Approved *bool  `json:"approved" validate:"required"`
}

// DecisionRequest is one batch of decisions for a workflow.
type DecisionRequest struct {
	Decisions []Decision `json:"decisions" validate:"required,min=1,max=500,dive"`
}

// DecisionResult is the workflow after a batch plus per-item failures.
type DecisionResult struct {
	Workflow Workflow    `json:"workflow"`
	Errors   []ItemError `json:"errors"`
}
