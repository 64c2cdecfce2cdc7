package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
)

const taskColumns = `id, project_id, title, description, status, priority, assignee_user_id,
       created_at, finished_at, deleted_at`

// live is the only soft-delete filter; every read and count builds on it.
const live = `deleted_at IS NULL`

func liveSelect(tail string) string {
	return `SELECT ` + taskColumns + ` FROM tasks WHERE ` + live + tail
}

// TaskRepository handles SQL operations for tasks
type TaskRepository struct {
	db sqlx.ExtContext
}

func NewTaskRepository(db sqlx.ExtContext) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *TaskRepository) WithTx(tx *sqlx.Tx) *TaskRepository {
	return &TaskRepository{db: tx}
}

// Create inserts t and fills in its ID.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	q := r.db.Rebind(`
INSERT INTO tasks (project_id, title, description, status, priority, assignee_user_id, created_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)

	err := r.db.QueryRowxContext(ctx, q,
		t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeUserID, t.CreatedAt, t.FinishedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Get returns the live task with the given id.
func (r *TaskRepository) Get(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := sqlx.GetContext(ctx, r.db, &t, r.db.Rebind(liveSelect(` AND id = ?`)), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// ListByProject returns every live task of a project, oldest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	out := make([]domain.Task, 0, 16)
	q := r.db.Rebind(liveSelect(` AND project_id = ? ORDER BY id`))
	if err := sqlx.SelectContext(ctx, r.db, &out, q, projectID); err != nil {
		return nil, fmt.Errorf("list tasks of project %d: %w", projectID, err)
	}
	return out, nil
}

// CountLiveByProject counts the project's tasks that are not soft-deleted.
func (r *TaskRepository) CountLiveByProject(ctx context.Context, projectID int64) (int, error) {
	var n int
	q := r.db.Rebind(`SELECT COUNT(*) FROM tasks WHERE ` + live + ` AND project_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &n, q, projectID); err != nil {
		return 0, fmt.Errorf("count tasks of project %d: %w", projectID, err)
	}
	return n, nil
}

// Update writes the mutable fields of a live task.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	q := r.db.Rebind(`
UPDATE tasks
SET title = ?, description = ?, status = ?, priority = ?, assignee_user_id = ?, finished_at = ?
WHERE id = ? AND ` + live)

	result, err := r.db.ExecContext(ctx, q,
		t.Title, t.Description, t.Status, t.Priority, t.AssigneeUserID, t.FinishedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return requireAffected(result)
}

// SoftDelete sets the deleted_at marker on a live task.
func (r *TaskRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	q := r.db.Rebind(`UPDATE tasks SET deleted_at = ? WHERE id = ? AND ` + live)

	result, err := r.db.ExecContext(ctx, q, at, id)
	if err != nil {
		return fmt.Errorf("soft delete task %d: %w", id, err)
	}
	return requireAffected(result)
}

// PurgeDeleted hard-deletes tasks soft-deleted before the cutoff.
func (r *TaskRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	q := r.db.Rebind(`DELETE FROM tasks WHERE deleted_at IS NOT NULL AND deleted_at < ?`)

	result, err := r.db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, fmt.Errorf("purge tasks: %w", err)
	}
	return result.RowsAffected()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
