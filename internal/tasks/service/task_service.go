package service

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	projectrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
)

// TaskService handles business logic for tasks
type TaskService struct {
	db       *sqlx.DB
	tasks    *repository.TaskRepository
	projects *projectrepo.ProjectRepository
	events   events.Publisher
	now      func() time.Time
}

// NewTaskService creates a task service. db opens the transaction that pins
// the parent project while a task is inserted.
func NewTaskService(
	db *sqlx.DB,
	tasks *repository.TaskRepository,
	projects *projectrepo.ProjectRepository,
	publisher events.Publisher,
) *TaskService {
	return &TaskService{
		db:       db,
		tasks:    tasks,
		projects: projects,
		events:   publisher,
		now:      time.Now,
	}
}

// Create adds a task under a live project. Defaults: BACKLOG, MEDIUM. The
// project stays share-locked until the insert commits.
func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}

	status := req.Status
	if status == "" {
		status = domain.StatusBacklog
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if _, err := domain.ParsePriority(string(priority)); err != nil {
		return nil, err
	}

	now := sqldb.Timestamp(s.now())
	t := &domain.Task{
		ProjectID:      req.ProjectID,
		Title:          title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		AssigneeUserID: req.AssigneeUserID,
		CreatedAt:      now,
	}
	if status == domain.StatusDone {
		t.FinishedAt = &now
	}

	err := sqldb.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.projects.WithTx(tx).GetForShare(ctx, req.ProjectID); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.TaskCreated, events.EntityTask, t.ID, s.now())
	return t, nil
}

// Get retrieves a live task
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.Get(ctx, id)
}

// ListByProject returns all live tasks of a project, unpaginated.
func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// Update applies a partial update. A malformed status is rejected before
// anything is read; entering DONE stamps finished_at and nothing clears it.
func (s *TaskService) Update(ctx context.Context, id int64, req *domain.UpdateTaskRequest) (*domain.Task, error) {
	var status *domain.Status
	if req.Status != nil {
		st, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}
	if req.Priority != nil {
		if _, err := domain.ParsePriority(string(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperror.Validation("title must not be empty")
	}

	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssigneeUserID != nil {
		t.AssigneeUserID = req.AssigneeUserID
	}

	done := false
	if status != nil {
		if *status == domain.StatusDone {
			now := sqldb.Timestamp(s.now())
			t.FinishedAt = &now
			done = true
		}
		t.Status = *status
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	eventType := events.TaskUpdated
	if done {
		eventType = events.TaskDone
	}
	events.Emit(ctx, s.events, eventType, events.EntityTask, t.ID, s.now())
	return t, nil
}

// Delete soft-deletes a live task. Unlike projects there is no blocking
// condition.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.SoftDelete(ctx, id, sqldb.Timestamp(s.now())); err != nil {
		return err
	}

	events.Emit(ctx, s.events, events.TaskDeleted, events.EntityTask, id, s.now())
	return nil
}
