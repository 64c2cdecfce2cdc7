package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	taskdomain "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
	taskrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/testutil"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setupProjectService(t *testing.T) (*ProjectService, *taskrepo.TaskRepository, *testutil.RecordingPublisher, *clock) {
	db := testutil.NewTestDB(t)
	tasks := taskrepo.NewTaskRepository(db)
	pub := &testutil.RecordingPublisher{}
	clk := &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewProjectService(db, repository.NewProjectRepository(db), tasks, pub)
	svc.now = clk.now
	return svc, tasks, pub, clk
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestProjectService_CreateDefaults(t *testing.T) {
	svc, _, pub, clk := setupProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "  Alpha  ", Description: strPtr("first")})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Alpha", p.Name)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.Nil(t, p.FinishedAt)
	assert.True(t, p.CreatedAt.Equal(clk.t))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, *p.Description, *got.Description)
	assert.True(t, got.CreatedAt.Equal(p.CreatedAt))

	assert.Equal(t, []string{events.ProjectCreated}, pub.Types())
	assert.True(t, pub.Events()[0].OccurredAt.Equal(clk.t))
	assert.Equal(t, p.ID, pub.Events()[0].EntityID)
}

func TestProjectService_CreateArchivedStampsFinishedAt(t *testing.T) {
	svc, _, _, clk := setupProjectService(t)

	p, err := svc.Create(context.Background(), &domain.CreateProjectRequest{Name: "Done", Status: domain.StatusArchived})
	require.NoError(t, err)
	require.NotNil(t, p.FinishedAt)
	assert.True(t, p.FinishedAt.Equal(clk.t))
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc, _, pub, _ := setupProjectService(t)

	_, err := svc.Create(context.Background(), &domain.CreateProjectRequest{Name: "   "})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(context.Background(), &domain.CreateProjectRequest{Name: "x", Status: "CLOSED"})
	assert.True(t, apperror.IsValidation(err))

	assert.Empty(t, pub.Types())
}

func TestProjectService_UpdateArchiveKeepsFinishedAt(t *testing.T) {
	svc, _, pub, clk := setupProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Alpha"})
	require.NoError(t, err)

	archivedAt := clk.t.Add(time.Hour)
	clk.t = archivedAt
	p, err = svc.Update(ctx, p.ID, &domain.UpdateProjectRequest{Status: statusPtr(domain.StatusArchived)})
	require.NoError(t, err)
	require.NotNil(t, p.FinishedAt)
	assert.True(t, p.FinishedAt.Equal(archivedAt))

	clk.t = archivedAt.Add(time.Hour)
	p, err = svc.Update(ctx, p.ID, &domain.UpdateProjectRequest{Status: statusPtr(domain.StatusActive)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, p.Status)
	require.NotNil(t, p.FinishedAt)
	assert.True(t, p.FinishedAt.Equal(archivedAt))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, got.FinishedAt.Equal(archivedAt))

	assert.Equal(t, []string{events.ProjectCreated, events.ProjectArchived, events.ProjectUpdated}, pub.Types())
}

func TestProjectService_UpdateMissing(t *testing.T) {
	svc, _, _, _ := setupProjectService(t)

	_, err := svc.Update(context.Background(), 404, &domain.UpdateProjectRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectService_UpdateInvalidStatusIsCheckedFirst(t *testing.T) {
	svc, _, _, _ := setupProjectService(t)

	_, err := svc.Update(context.Background(), 404, &domain.UpdateProjectRequest{Status: statusPtr("archived")})
	assert.True(t, apperror.IsValidation(err))
}

func TestProjectService_DeleteBlockedByLiveTask(t *testing.T) {
	svc, tasks, pub, clk := setupProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Busy"})
	require.NoError(t, err)

	task := &taskdomain.Task{
		ProjectID: p.ID,
		Title:     "t",
		Status:    taskdomain.StatusBacklog,
		Priority:  taskdomain.PriorityMedium,
		CreatedAt: clk.t,
	}
	require.NoError(t, tasks.Create(ctx, task))

	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectHasTasks)
	assert.True(t, apperror.IsConflict(err))

	_, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, tasks.SoftDelete(ctx, task.ID, clk.t))
	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	assert.Equal(t, []string{events.ProjectCreated, events.ProjectDeleted}, pub.Types())
}

func TestProjectService_ListClampsAndSkipsDeleted(t *testing.T) {
	svc, _, _, _ := setupProjectService(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		p, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: name})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, svc.Delete(ctx, ids[1]))

	page, err := svc.List(ctx, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PerPage)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[0], page.Items[0].ID)
	assert.Equal(t, ids[2], page.Items[1].ID)

	page, err = svc.List(ctx, 3, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Offset())
}

func TestProjectService_DeleteLocksProjectBeforeCounting(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	svc := NewProjectService(db, repository.NewProjectRepository(db), taskrepo.NewTaskRepository(db), events.NopPublisher{})
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM projects WHERE deleted_at IS NULL AND id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "status", "created_at", "finished_at", "deleted_at"}).
			AddRow(5, "a", nil, "ACTIVE", created, nil, nil))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE deleted_at IS NULL AND project_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE projects SET deleted_at = \$1 WHERE id = \$2`).
		WithArgs(created, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}
