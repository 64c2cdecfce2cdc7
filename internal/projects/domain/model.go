package domain

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOnHold   Status = "ON_HOLD"
	StatusArchived Status = "ARCHIVED"
)

// ParseStatus accepts the exact upper-case status names.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusOnHold, StatusArchived:
		return st, nil
	}
	return "", apperror.Validation(fmt.Sprintf("invalid project status %q", s))
}

// Project is a tracked project. DeletedAt is the soft-delete marker and is
// never serialized.
type Project struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Status      Status     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	FinishedAt  *time.Time `json:"finished_at" db:"finished_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

// CreateProjectRequest represents data needed to create a new project
type CreateProjectRequest struct {
	Name        string
	Description *string
	Status      Status
}

// UpdateProjectRequest represents data for updating a project. Nil fields
// are left unchanged.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
	Status      *Status
}
