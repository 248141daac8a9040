package workflows

import "context"

// Repo defines persistence operations for workflows.
type Repo interface {
	Create(ctx context.Context, w Workflow) error
	Get(ctx context.Context, id string) (Workflow, error)
	// Update loads the workflow, runs fn on a copy and stores the result as one unit.
	// When fn fails nothing is stored and its error is returned.
	Update(ctx context.Context, id string, fn func(*Workflow) error) (Workflow, error)
}
