package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/testutil"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/repository"
)

func setupUserService(t *testing.T) (*UserService, *testutil.RecordingPublisher) {
	db := testutil.NewTestDB(t)
	pub := &testutil.RecordingPublisher{}

	svc := NewUserService(repository.NewUserRepository(db), pub)
	svc.now = func() time.Time { return time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC) }
	return svc, pub
}

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	svc, pub := setupUserService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.True(t, u.IsActive)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.True(t, got.IsActive)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))

	_, err = svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Other Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.True(t, apperror.IsConflict(err))

	assert.Equal(t, []string{events.UserCreated}, pub.Types())
}

func TestUserService_UpdateEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	ada, err := svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	bob, err := svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, &domain.UpdateUserRequest{Email: strPtr("ada@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	same, err := svc.Update(ctx, ada.ID, &domain.UpdateUserRequest{Email: strPtr("ada@example.com"), DisplayName: strPtr("Ada L.")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", same.DisplayName)

	moved, err := svc.Update(ctx, bob.ID, &domain.UpdateUserRequest{Email: strPtr("robert@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "robert@example.com", moved.Email)

	_, err = svc.Update(ctx, 999, &domain.UpdateUserRequest{DisplayName: strPtr("ghost")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_DeactivateKeepsEmailReserved(t *testing.T) {
	svc, pub := setupUserService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	u, err = svc.Deactivate(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = svc.Create(ctx, &domain.CreateUserRequest{DisplayName: "Ada 2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = svc.Deactivate(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.Equal(t, []string{events.UserCreated, events.UserDeactivated}, pub.Types())
}

func TestUserService_ListPages(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, &domain.CreateUserRequest{
			DisplayName: fmt.Sprintf("User %d", i),
			Email:       fmt.Sprintf("user%d@example.com", i),
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.Offset())
	assert.Equal(t, 5, page.PerPage)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, "user5@example.com", page.Items[0].Email)
}
