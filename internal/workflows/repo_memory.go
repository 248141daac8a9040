package workflows

import (
	"context"
	"sync"
)

// MemoryRepo stores workflows in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Workflow
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Workflow)}
}

// Create stores the workflow.
func (r *MemoryRepo) Create(ctx context.Context, w Workflow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[w.ID] = w.Clone()
	return nil
}

// Get returns a workflow by its ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Workflow, error) {
	if err := ctx.Err(); err != nil {
		return Workflow{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	return w.Clone(), nil
}

// Update applies fn to a copy under the write lock and swaps it in on success.
func (r *MemoryRepo) Update(ctx context.Context, id string, fn func(*Workflow) error) (Workflow, error) {
	if err := ctx.Err(); err != nil {
		return Workflow{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return Workflow{}, err
	}
	r.byID[id] = next
	return next.Clone(), nil
}
