package service

import (
	"context"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/repository"
)

type UserService struct {
	users  *repository.UserRepository
	events events.Publisher
	now    func() time.Time
}

func NewUserService(users *repository.UserRepository, publisher events.Publisher) *UserService {
	return &UserService{
		users:  users,
		events: publisher,
		now:    time.Now,
	}
}

// Create registers a new active user. The email lookup is a fast path; a
// concurrent insert that slips past it still fails on the UNIQUE constraint
// with the same error.
func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, apperror.Validation("display_name is required")
	}
	if req.Email == "" {
		return nil, apperror.Validation("email is required")
	}

	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	u := &domain.User{
		DisplayName: name,
		Email:       req.Email,
		IsActive:    true,
		CreatedAt:   sqldb.Timestamp(s.now()),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.UserCreated, events.EntityUser, u.ID, s.now())
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// List returns one page of users, deactivated ones included.
func (s *UserService) List(ctx context.Context, page, perPage int) (*pagination.Page[domain.User], error) {
	page, perPage = pagination.Clamp(page, perPage)

	items, total, err := s.users.ListPaginated(ctx, pagination.Offset(page, perPage), perPage)
	if err != nil {
		return nil, err
	}
	return &pagination.Page[domain.User]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// Update changes display name and/or email. The new email must not belong
// to another user.
func (s *UserService) Update(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return nil, apperror.Validation("display_name must not be empty")
	}
	if req.Email != nil && *req.Email == "" {
		return nil, apperror.Validation("email must not be empty")
	}

	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		if err := s.ensureEmailFree(ctx, *req.Email, u.ID); err != nil {
			return nil, err
		}
		u.Email = *req.Email
	}
	if req.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*req.DisplayName)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.UserUpdated, events.EntityUser, u.ID, s.now())
	return u, nil
}

// Deactivate marks the user inactive. The row and its email stay reserved.
func (s *UserService) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.IsActive = false
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.UserDeactivated, events.EntityUser, u.ID, s.now())
	return u, nil
}

// ensureEmailFree fails with ErrEmailTaken when email belongs to a user
// other than selfID.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if apperror.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domain.ErrEmailTaken
	}
	return nil
}
