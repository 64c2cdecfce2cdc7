package maintenance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	projectdomain "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/domain"
	projectrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	taskdomain "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
	taskrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/testutil"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db       *sqlx.DB
	projects *projectrepo.ProjectRepository
	tasks    *taskrepo.TaskRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	return &fixture{
		db:       db,
		projects: projectrepo.NewProjectRepository(db),
		tasks:    taskrepo.NewTaskRepository(db),
	}
}

func (f *fixture) project(t *testing.T, deletedAt *time.Time) int64 {
	ctx := context.Background()
	p := &projectdomain.Project{Name: "p", Status: projectdomain.StatusActive, CreatedAt: base.Add(-30 * 24 * time.Hour)}
	require.NoError(t, f.projects.Create(ctx, p))
	if deletedAt != nil {
		require.NoError(t, f.projects.SoftDelete(ctx, p.ID, sqldb.Timestamp(*deletedAt)))
	}
	return p.ID
}

func (f *fixture) task(t *testing.T, projectID int64, deletedAt *time.Time) int64 {
	ctx := context.Background()
	task := &taskdomain.Task{
		ProjectID: projectID,
		Title:     "t",
		Status:    taskdomain.StatusBacklog,
		Priority:  taskdomain.PriorityMedium,
		CreatedAt: base.Add(-30 * 24 * time.Hour),
	}
	require.NoError(t, f.tasks.Create(ctx, task))
	if deletedAt != nil {
		require.NoError(t, f.tasks.SoftDelete(ctx, task.ID, sqldb.Timestamp(*deletedAt)))
	}
	return task.ID
}

func (f *fixture) count(t *testing.T, table string) int {
	var n int
	require.NoError(t, f.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func at(d time.Duration) *time.Time {
	ts := base.Add(d)
	return &ts
}

func TestPurge_RemovesOnlyRowsDeletedBeforeCutoff(t *testing.T) {
	f := newFixture(t)

	live := f.project(t, nil)
	f.task(t, live, nil)
	f.task(t, live, at(-10*24*time.Hour))
	f.task(t, live, at(-time.Hour))

	f.project(t, at(-10*24*time.Hour))
	recent := f.project(t, at(-time.Hour))

	res, err := NewPurger(f.db).Purge(context.Background(), base.Add(-24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Tasks)
	assert.Equal(t, int64(1), res.Projects)
	assert.Equal(t, 2, f.count(t, "projects"))
	assert.Equal(t, 2, f.count(t, "tasks"))

	_, err = f.projects.Get(context.Background(), live)
	assert.NoError(t, err)

	var deletedAt time.Time
	require.NoError(t, f.db.Get(&deletedAt, f.db.Rebind("SELECT deleted_at FROM projects WHERE id = ?"), recent))
	assert.True(t, deletedAt.Equal(base.Add(-time.Hour)))
}

func TestPurge_NothingToDo(t *testing.T) {
	f := newFixture(t)
	f.project(t, nil)

	res, err := NewPurger(f.db).Purge(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, PurgeResult{}, res)
	assert.Equal(t, 1, f.count(t, "projects"))
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	f := newFixture(t)
	s := NewScheduler(NewPurger(f.db), time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := s.Start("every tuesday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid purge schedule")
}

func TestScheduler_RunPurgeUsesRetention(t *testing.T) {
	f := newFixture(t)
	f.project(t, at(-3*time.Hour))
	f.project(t, at(-30*time.Minute))

	s := NewScheduler(NewPurger(f.db), time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return base }

	s.runPurge()
	assert.Equal(t, 1, f.count(t, "projects"))

	require.NoError(t, s.Start("0 0 3 * * *"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
