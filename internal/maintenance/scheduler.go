package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
)

// Scheduler runs the purge on a cron expression with a seconds field,
// e.g. "0 0 3 * * *" for 03:00 every day.
type Scheduler struct {
	cron      *cron.Cron
	purger    *Purger
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewScheduler(purger *Purger, retention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		purger:    purger,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the purge job and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runPurge); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", spec, err)
	}

	s.logger.Info("purge scheduler started", "schedule", spec, "retention", s.retention)
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running purge, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("purge still running at shutdown")
	}
}

func (s *Scheduler) runPurge() {
	ctx := logging.WithContext(context.Background(), s.logger)
	if _, err := s.purger.Purge(ctx, s.now().Add(-s.retention)); err != nil {
		s.logger.Error("purge failed", "error", err)
	}
}
