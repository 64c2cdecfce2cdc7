package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/maintenance"
)

const serviceName = "devboard-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database ready", "driver", cfg.Database.Driver)

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("redis event publishing enabled", "addr", cfg.Redis.Addr)
	}

	var scheduler *maintenance.Scheduler
	if cfg.Purge.Schedule != "" {
		scheduler = maintenance.NewScheduler(maintenance.NewPurger(db), cfg.Purge.Retention, logger)
		if err := scheduler.Start(cfg.Purge.Schedule); err != nil {
			return err
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DB:             db,
		Redis:          rdb,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErrs := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		listenErrs <- server.ListenAndServe()
	}()

	select {
	case err := <-listenErrs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	shutdownErr := server.Shutdown(shutdownCtx)
	if listenErr := <-listenErrs; !errors.Is(listenErr, http.ErrServerClosed) {
		return listenErr
	}
	return shutdownErr
}
