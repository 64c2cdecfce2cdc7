package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/domain"
)

const projectColumns = `id, name, description, status, created_at, finished_at, deleted_at`

// live is the only soft-delete filter; every read builds on it.
const live = `deleted_at IS NULL`

func liveSelect(tail string) string {
	return `SELECT ` + projectColumns + ` FROM projects WHERE ` + live + tail
}

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db sqlx.ExtContext
}

// NewProjectRepository creates a new project repository over a *sqlx.DB or *sqlx.Tx.
func NewProjectRepository(db sqlx.ExtContext) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProjectRepository) WithTx(tx *sqlx.Tx) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

// Create inserts p and fills in its ID.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	q := r.db.Rebind(`
INSERT INTO projects (name, description, status, created_at, finished_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id`)

	if err := r.db.QueryRowxContext(ctx, q, p.Name, p.Description, p.Status, p.CreatedAt, p.FinishedAt).
		Scan(&p.ID); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Get returns the live project with the given id.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(liveSelect(` AND id = ?`)), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return &p, nil
}

// GetForUpdate is Get with an exclusive row lock held until the surrounding
// transaction ends. Deletion takes it before counting live tasks.
func (r *ProjectRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Project, error) {
	return r.getLocked(ctx, id, "FOR UPDATE")
}

// GetForShare is Get with a shared row lock. Task creation takes it so a
// concurrent delete cannot slip between the project check and the insert.
func (r *ProjectRepository) GetForShare(ctx context.Context, id int64) (*domain.Project, error) {
	return r.getLocked(ctx, id, "FOR SHARE")
}

// SQLite has no row locks; its single connection already serializes the
// transaction.
func (r *ProjectRepository) getLocked(ctx context.Context, id int64, clause string) (*domain.Project, error) {
	tail := ` AND id = ?`
	if r.db.DriverName() != config.DriverSQLite {
		tail += ` ` + clause
	}

	var p domain.Project
	err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(liveSelect(tail)), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock project %d: %w", id, err)
	}
	return &p, nil
}

// ListPaginated returns one page of live projects and the total live count.
func (r *ProjectRepository) ListPaginated(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM projects WHERE `+live); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	items := make([]domain.Project, 0, limit)
	q := r.db.Rebind(liveSelect(` ORDER BY id LIMIT ? OFFSET ?`))
	if err := sqlx.SelectContext(ctx, r.db, &items, q, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return items, total, nil
}

// Update writes the mutable fields of a live project.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	q := r.db.Rebind(`
UPDATE projects
SET name = ?, description = ?, status = ?, finished_at = ?
WHERE id = ? AND ` + live)

	result, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Status, p.FinishedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return requireAffected(result)
}

// SoftDelete sets the deleted_at marker on a live project.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	q := r.db.Rebind(`UPDATE projects SET deleted_at = ? WHERE id = ? AND ` + live)

	result, err := r.db.ExecContext(ctx, q, at, id)
	if err != nil {
		return fmt.Errorf("soft delete project %d: %w", id, err)
	}
	return requireAffected(result)
}

// PurgeDeleted hard-deletes projects soft-deleted before the cutoff.
func (r *ProjectRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	q := r.db.Rebind(`DELETE FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < ?`)

	result, err := r.db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, fmt.Errorf("purge projects: %w", err)
	}
	return result.RowsAffected()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
