// Package maintenance removes soft-deleted rows once they are past retention.
package maintenance

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
	projectrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
	taskrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
)

type PurgeResult struct {
	Tasks    int64
	Projects int64
}

type Purger struct {
	db       *sqlx.DB
	projects *projectrepo.ProjectRepository
	tasks    *taskrepo.TaskRepository
}

func NewPurger(db *sqlx.DB) *Purger {
	return &Purger{
		db:       db,
		projects: projectrepo.NewProjectRepository(db),
		tasks:    taskrepo.NewTaskRepository(db),
	}
}

// Purge hard-deletes tasks and then projects whose deleted_at is before the
// cutoff. Live rows are never touched.
func (p *Purger) Purge(ctx context.Context, before time.Time) (PurgeResult, error) {
	var res PurgeResult
	cutoff := sqldb.Timestamp(before)

	err := sqldb.InTx(ctx, p.db, func(tx *sqlx.Tx) error {
		n, err := p.tasks.WithTx(tx).PurgeDeleted(ctx, cutoff)
		if err != nil {
			return err
		}
		res.Tasks = n

		n, err = p.projects.WithTx(tx).PurgeDeleted(ctx, cutoff)
		if err != nil {
			return err
		}
		res.Projects = n
		return nil
	})
	if err != nil {
		return PurgeResult{}, err
	}

	logging.FromContext(ctx).Info("purged soft-deleted rows",
		"before", cutoff,
		"tasks", res.Tasks,
		"projects", res.Projects,
	)
	return res, nil
}
