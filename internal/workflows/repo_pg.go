package workflows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Create inserts the workflow and its changes in one transaction.
func (r *PGRepo) Create(ctx context.Context, w Workflow) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertWorkflow = `
INSERT INTO workflows (id, status, created_at, updated_at, completed_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertWorkflow, w.ID, w.Status, w.CreatedAt, w.UpdatedAt, nullTime(w.CompletedAt)); err != nil {
		return fmt.Errorf("insert workflow: %w", err)
	}

	const insertChange = `
INSERT INTO workflow_changes (
    workflow_id, id, position, category, original, suggested, reason, impact, confidence, approval, decided_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, c := range w.Changes {
		if _, err := tx.ExecContext(ctx, insertChange,
			w.ID,
			c.ID,
			i,
			c.Category,
			c.Original,
			c.Suggested,
			c.Reason,
			c.Impact,
			c.Confidence,
			c.Approval,
			nullTime(c.DecidedAt),
		); err != nil {
			return fmt.Errorf("insert change %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Get returns a workflow with its changes in creation order.
func (r *PGRepo) Get(ctx context.Context, id string) (Workflow, error) {
	return load(ctx, r.DB, id, false)
}

// Update locks the workflow row, applies fn and writes back the status and any
// changed decisions before committing.
func (r *PGRepo) Update(ctx context.Context, id string, fn func(*Workflow) error) (Workflow, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Workflow{}, err
	}
	defer tx.Rollback()

	current, err := load(ctx, tx, id, true)
	if err != nil {
		return Workflow{}, err
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return Workflow{}, err
	}

	const updateWorkflow = `
UPDATE workflows SET status = $1, updated_at = $2, completed_at = $3
WHERE id = $4`
	if _, err := tx.ExecContext(ctx, updateWorkflow, next.Status, next.UpdatedAt, nullTime(next.CompletedAt), id); err != nil {
		return Workflow{}, fmt.Errorf("update workflow: %w", err)
	}

	const updateChange = `
UPDATE workflow_changes SET approval = $1, decided_at = $2
WHERE workflow_id = $3 AND id = $4`
	for i, c := range next.Changes {
		prev := current.Changes[i]
		if c.Approval == prev.Approval && sameTime(c.DecidedAt, prev.DecidedAt) {
			continue
		}
		if _, err := tx.ExecContext(ctx, updateChange, c.Approval, nullTime(c.DecidedAt), id, c.ID); err != nil {
			return Workflow{}, fmt.Errorf("update change %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Workflow{}, err
	}
	return next, nil
}

func load(ctx context.Context, q querier, id string, forUpdate bool) (Workflow, error) {
	query := `
SELECT id, status, created_at, updated_at, completed_at
FROM workflows
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}
	var w Workflow
	var completedAt sql.NullTime
	err := q.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Status, &w.CreatedAt, &w.UpdatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workflow{}, ErrNotFound
		}
		return Workflow{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		w.CompletedAt = &t
	}

	const changesQuery = `
SELECT id, category, original, suggested, reason, impact, confidence, approval, decided_at
FROM workflow_changes
WHERE workflow_id = $1
ORDER BY position`
	rows, err := q.QueryContext(ctx, changesQuery, id)
	if err != nil {
		return Workflow{}, err
	}
	defer rows.Close()

	w.Changes = []SuggestedChange{}
	for rows.Next() {
		var c SuggestedChange
		var decidedAt sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.Category,
			&c.Original,
			&c.Suggested,
			&c.Reason,
			&c.Impact,
			&c.Confidence,
			&c.Approval,
			&decidedAt,
		); err != nil {
			return Workflow{}, err
		}
		if decidedAt.Valid {
			t := decidedAt.Time
			c.DecidedAt = &t
		}
		w.Changes = append(w.Changes, c)
	}
	if err := rows.Err(); err != nil {
		return Workflow{}, err
	}
	return w, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
