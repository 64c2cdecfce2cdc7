package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/domain"
)

const userColumns = `id, display_name, email, is_active, created_at`

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u and fills in its ID. A duplicate email surfaces as
// domain.ErrEmailTaken; the UNIQUE constraint is the authoritative guard.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	q := r.db.Rebind(`
INSERT INTO users (display_name, email, is_active, created_at)
VALUES (?, ?, ?, ?)
RETURNING id`)

	err := r.db.QueryRowxContext(ctx, q, u.DisplayName, u.Email, u.IsActive, u.CreatedAt).Scan(&u.ID)
	if sqldb.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Get retrieves a user by id, active or not.
func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

// GetByEmail is an exact, case-sensitive match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + where)

	err := sqlx.GetContext(ctx, r.db, &u, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListPaginated returns one page of users and the total count.
func (r *UserRepository) ListPaginated(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	items := make([]domain.User, 0, limit)
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`)
	if err := sqlx.SelectContext(ctx, r.db, &items, q, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return items, total, nil
}

// Update writes display name, email and the active flag.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	q := r.db.Rebind(`
UPDATE users
SET display_name = ?, email = ?, is_active = ?
WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, q, u.DisplayName, u.Email, u.IsActive, u.ID)
	if sqldb.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
