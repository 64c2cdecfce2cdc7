package domain

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
)

type Status string

const (
	StatusBacklog    Status = "BACKLOG"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParseStatus rejects anything but the exact status names; malformed values
// never reach the store.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusBacklog, StatusInProgress, StatusDone:
		return st, nil
	}
	return "", apperror.Validation(fmt.Sprintf("invalid task status %q", s))
}

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", apperror.Validation(fmt.Sprintf("invalid task priority %q", s))
}

// Task belongs to a project. AssigneeUserID is not checked against users.
type Task struct {
	ID             int64      `json:"id" db:"id"`
	ProjectID      int64      `json:"project_id" db:"project_id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	Status         Status     `json:"status" db:"status"`
	Priority       Priority   `json:"priority" db:"priority"`
	AssigneeUserID *int64     `json:"assignee_user_id" db:"assignee_user_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	FinishedAt     *time.Time `json:"finished_at" db:"finished_at"`
	DeletedAt      *time.Time `json:"-" db:"deleted_at"`
}

type CreateTaskRequest struct {
	ProjectID      int64
	Title          string
	Description    *string
	Status         Status
	Priority       Priority
	AssigneeUserID *int64
}

// UpdateTaskRequest carries a partial update. Status stays a raw string
// until the service has parsed it.
type UpdateTaskRequest struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *Priority
	AssigneeUserID *int64
}
