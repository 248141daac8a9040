package workflows

import (
	"fmt"
	"time"
)

// decisionApplied is the event emitted for every decision recorded on a change.
type decisionApplied struct {
	ChangeID string
	Approval Approval
	At       time.Time
}

// transition advances the status after a decisionApplied event. The target
// depends on how many changes are decided: none keeps draft, some is in_review,
// all is completed. Completed is terminal.
func transition(current Status, decided, total int) (Status, error) {
	if current == StatusCompleted {
		return current, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current)
	}
	if decided < 0 || decided > total {
		return current, fmt.Errorf("%w: %d of %d decided", ErrInvalidTransition, decided, total)
	}
	switch {
	case total > 0 && decided == total:
		return StatusCompleted, nil
	case decided > 0:
		return StatusInReview, nil
	case current == StatusDraft:
		return StatusDraft, nil
	default:
		return current, fmt.Errorf("%w: %s with no decisions", ErrInvalidTransition, current)
	}
}

// apply records one event on w and advances its status.
func (w *Workflow) apply(ev decisionApplied) error {
	idx := -1
	for i := range w.Changes {
		if w.Changes[i].ID == ev.ChangeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("change %q: not in workflow", ev.ChangeID)
	}
	next, err := transition(w.Status, w.decidedWith(idx), len(w.Changes))
	if err != nil {
		return err
	}
	at := ev.At
	w.Changes[idx].Approval = ev.Approval
	w.Changes[idx].DecidedAt = &at
	w.Status = next
	w.UpdatedAt = at
	if next == StatusCompleted {
		w.CompletedAt = &at
	}
	return nil
}

// decidedWith counts decided changes as if change idx were decided too.
func (w *Workflow) decidedWith(idx int) int {
	n := w.Decided()
	if w.Changes[idx].Approval == ApprovalPending {
		n++
	}
	return n
}

// applyDecisions applies a batch to w. Unknown change ids become item errors and
// do not stop the rest of the batch. A completed workflow rejects the whole batch.
// A batch that completes the workflow still applies its remaining entries, since
// callers observe the batch as one update.
func applyDecisions(w *Workflow, decisions []Decision, now time.Time) (applied []decisionApplied, itemErrs []ItemError, err error) {
	if w.Status == StatusCompleted {
		return nil, nil, ErrWorkflowClosed
	}
	known := make(map[string]bool, len(w.Changes))
	for _, c := range w.Changes {
		known[c.ID] = true
	}
	for _, d := range decisions {
		if !known[d.ChangeID] {
			itemErrs = append(itemErrs, ItemError{
				ChangeID: d.ChangeID,
				Code:     CodeChangeNotFound,
				Message:  "change not found in workflow",
			})
			continue
		}
		ev := decisionApplied{ChangeID: d.ChangeID, Approval: ApprovalRejected, At: now}
		if d.Approved != nil && *d.Approved {
			ev.Approval = ApprovalApproved
		}
		if w.Status == StatusCompleted {
			// re-decision inside the completing batch
			if err := w.redecide(ev); err != nil {
				return nil, nil, err
			}
		} else if err := w.apply(ev); err != nil {
			return nil, nil, err
		}
		applied = append(applied, ev)
	}
	return applied, itemErrs, nil
}

// redecide overwrites an already-decided change without a status change.
func (w *Workflow) redecide(ev decisionApplied) error {
	for i := range w.Changes {
		if w.Changes[i].ID == ev.ChangeID {
			at := ev.At
			w.Changes[i].Approval = ev.Approval
			w.Changes[i].DecidedAt = &at
			return nil
		}
	}
	return fmt.Errorf("change %q: not in workflow", ev.ChangeID)
}
