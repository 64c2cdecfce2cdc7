package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/maintenance"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "worker",
		Short:        "Maintenance tasks for the devboard store",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newPurgeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := bootstrap.OpenDB(cmd.Context(), bootstrap.DBOptions{Config: &cfg.Database})
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Info("schema up to date", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

func newPurgeCmd() *cobra.Command {
	var (
		retention time.Duration
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Hard-delete rows soft-deleted longer ago than the retention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if retention <= 0 {
				retention = cfg.Purge.Retention
			}
			before := time.Now().Add(-retention)

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "would purge rows deleted before %s\n", before.UTC().Format(time.RFC3339))
				return nil
			}

			ctx := logging.WithContext(cmd.Context(), logger)
			db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := maintenance.NewPurger(db).Purge(ctx, before)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "purged %d tasks and %d projects\n", res.Tasks, res.Projects)
			return nil
		},
	}

	cmd.Flags().DurationVar(&retention, "retention", 0, "override PURGE_RETENTION (e.g. 168h)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the cutoff without deleting")
	return cmd
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
