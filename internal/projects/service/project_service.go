package service

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	taskrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	db       *sqlx.DB
	projects *repository.ProjectRepository
	tasks    *taskrepo.TaskRepository
	events   events.Publisher
	now      func() time.Time
}

// NewProjectService creates a new project service. db is used to open the
// transaction guarding deletion.
func NewProjectService(
	db *sqlx.DB,
	projects *repository.ProjectRepository,
	tasks *taskrepo.TaskRepository,
	publisher events.Publisher,
) *ProjectService {
	return &ProjectService{
		db:       db,
		projects: projects,
		tasks:    tasks,
		events:   publisher,
		now:      time.Now,
	}
}

// Create creates a new project. Status defaults to ACTIVE; a project born
// ARCHIVED gets its finished_at right away.
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}

	now := sqldb.Timestamp(s.now())
	p := &domain.Project{
		Name:        name,
		Description: req.Description,
		Status:      status,
		CreatedAt:   now,
	}
	if status == domain.StatusArchived {
		p.FinishedAt = &now
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.ProjectCreated, events.EntityProject, p.ID, s.now())
	return p, nil
}

// Get retrieves a live project
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

// List returns one page of live projects.
func (s *ProjectService) List(ctx context.Context, page, perPage int) (*pagination.Page[domain.Project], error) {
	page, perPage = pagination.Clamp(page, perPage)

	items, total, err := s.projects.ListPaginated(ctx, pagination.Offset(page, perPage), perPage)
	if err != nil {
		return nil, err
	}
	return &pagination.Page[domain.Project]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// Update applies a partial update. Setting status to ARCHIVED stamps
// finished_at; no transition ever clears it.
func (s *ProjectService) Update(ctx context.Context, id int64, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	if req.Status != nil {
		if _, err := domain.ParseStatus(string(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperror.Validation("name must not be empty")
	}

	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	archived := false
	if req.Status != nil {
		if *req.Status == domain.StatusArchived {
			now := sqldb.Timestamp(s.now())
			p.FinishedAt = &now
			archived = true
		}
		p.Status = *req.Status
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	eventType := events.ProjectUpdated
	if archived {
		eventType = events.ProjectArchived
	}
	events.Emit(ctx, s.events, eventType, events.EntityProject, p.ID, s.now())
	return p, nil
}

// Delete soft-deletes a project that has no live tasks. The project row is
// locked before the task count, so the count and the soft delete cannot race
// a task being created under it.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	err := sqldb.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		projects := s.projects.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		if _, err := projects.GetForUpdate(ctx, id); err != nil {
			return err
		}

		count, err := tasks.CountLiveByProject(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrProjectHasTasks
		}

		return projects.SoftDelete(ctx, id, sqldb.Timestamp(s.now()))
	})
	if err != nil {
		return err
	}

	events.Emit(ctx, s.events, events.ProjectDeleted, events.EntityProject, id, s.now())
	return nil
}
