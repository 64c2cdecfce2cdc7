package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(255) NOT NULL,
	description TEXT,
	status      VARCHAR(16) NOT NULL DEFAULT 'ACTIVE'
	            CHECK (status IN ('ACTIVE', 'ON_HOLD', 'ARCHIVED')),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ,
	deleted_at  TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS tasks (
	id               BIGSERIAL PRIMARY KEY,
	project_id       BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title            VARCHAR(255) NOT NULL,
	description      TEXT,
	status           VARCHAR(16) NOT NULL DEFAULT 'BACKLOG'
	                 CHECK (status IN ('BACKLOG', 'IN_PROGRESS', 'DONE')),
	priority         VARCHAR(16) NOT NULL DEFAULT 'MEDIUM'
	                 CHECK (priority IN ('LOW', 'MEDIUM', 'HIGH')),
	assignee_user_id BIGINT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at      TIMESTAMPTZ,
	deleted_at       TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id           BIGSERIAL PRIMARY KEY,
	display_name VARCHAR(255) NOT NULL,
	email        VARCHAR(320) NOT NULL UNIQUE,
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        VARCHAR(255) NOT NULL,
	description TEXT,
	status      VARCHAR(16) NOT NULL DEFAULT 'ACTIVE'
	            CHECK (status IN ('ACTIVE', 'ON_HOLD', 'ARCHIVED')),
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at TIMESTAMP,
	deleted_at  TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS tasks (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id       INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title            VARCHAR(255) NOT NULL,
	description      TEXT,
	status           VARCHAR(16) NOT NULL DEFAULT 'BACKLOG'
	                 CHECK (status IN ('BACKLOG', 'IN_PROGRESS', 'DONE')),
	priority         VARCHAR(16) NOT NULL DEFAULT 'MEDIUM'
	                 CHECK (priority IN ('LOW', 'MEDIUM', 'HIGH')),
	assignee_user_id INTEGER,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at      TIMESTAMP,
	deleted_at       TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name VARCHAR(255) NOT NULL,
	email        VARCHAR(320) NOT NULL UNIQUE,
	is_active    BOOLEAN NOT NULL DEFAULT 1,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
}

// Shared by both dialects.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_projects_deleted_at ON projects (deleted_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_deleted_at ON tasks (deleted_at)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
// It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	switch db.DriverName() {
	case config.DriverSQLite:
		stmts = sqliteSchema
	case config.DriverPostgres, config.DriverPgx:
		stmts = postgresSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for _, stmt := range append(stmts, indexes...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
