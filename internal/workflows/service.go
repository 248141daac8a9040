package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/telemetry"
)

// Service runs the approval protocol over a Repo.
type Service struct {
	Repo  Repo
	Now   func() time.Time
	NewID func() string
}

// NewService constructs a Service with wall-clock time and random UUIDs.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Create opens a draft workflow with every change pending. Missing change ids
// are assigned; repeated ids are rejected.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Workflow, error) {
	if err := apperr.Struct(req); err != nil {
		return Workflow{}, err
	}

	now := s.now()
	w := Workflow{
		ID:        s.newID(),
		Status:    StatusDraft,
		Changes:   make([]SuggestedChange, 0, len(req.Changes)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	seen := make(map[string]bool, len(req.Changes))
	for i, c := range req.Changes {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			c.ID = s.newID()
		}
		if seen[c.ID] {
			return Workflow{}, fmt.Errorf("%w: changes[%d].id %q", ErrDuplicateChangeID, i, c.ID)
		}
		seen[c.ID] = true
		c.Approval = ApprovalPending
		c.DecidedAt = nil
		w.Changes = append(w.Changes, c)
	}

	if err := s.Repo.Create(ctx, w); err != nil {
		return Workflow{}, fmt.Errorf("create workflow: %w", err)
	}
	metrics.IncWorkflowCreated()
	telemetry.Info("workflow.created", map[string]any{
		"workflow_id": w.ID,
		"changes":     len(w.Changes),
	})
	return w, nil
}

// SubmitDecisions applies one batch atomically. Unknown change ids are reported
// per item while the other decisions still apply. A completed workflow rejects
// the call with ErrWorkflowClosed.
func (s *Service) SubmitDecisions(ctx context.Context, id string, req DecisionRequest) (DecisionResult, error) {
	if strings.TrimSpace(id) == "" {
		return DecisionResult{}, apperr.Invalid("id", "required")
	}
	if err := apperr.Struct(req); err != nil {
		return DecisionResult{}, err
	}

	var (
		applied  []decisionApplied
		itemErrs []ItemError
		before   Status
	)
	now := s.now()
	updated, err := s.Repo.Update(ctx, id, func(w *Workflow) error {
		before = w.Status
		var err error
		applied, itemErrs, err = applyDecisions(w, req.Decisions, now)
		return err
	})
	if err != nil {
		telemetry.Warn("workflow.decisions_rejected", map[string]any{
			"workflow_id": id,
			"err":         err,
		})
		return DecisionResult{}, err
	}

	approved := 0
	for _, ev := range applied {
		if ev.Approval == ApprovalApproved {
			approved++
		}
	}
	metrics.AddDecisions(string(ApprovalApproved), approved)
	metrics.AddDecisions(string(ApprovalRejected), len(applied)-approved)
	metrics.AddDecisions(CodeChangeNotFound, len(itemErrs))
	if before != StatusCompleted && updated.Status == StatusCompleted {
		metrics.IncWorkflowCompleted()
	}

	telemetry.Info("workflow.decisions_applied", map[string]any{
		"workflow_id": id,
		"applied":     len(applied),
		"errors":      len(itemErrs),
		"status_from": before,
		"status_to":   updated.Status,
		"decided":     updated.Decided(),
		"total":       len(updated.Changes),
	})

	if itemErrs == nil {
		itemErrs = []ItemError{}
	}
	return DecisionResult{Workflow: updated, Errors: itemErrs}, nil
}

// Get returns the current workflow.
func (s *Service) Get(ctx context.Context, id string) (Workflow, error) {
	if strings.TrimSpace(id) == "" {
		return Workflow{}, apperr.Invalid("id", "required")
	}
	return s.Repo.Get(ctx, id)
}
