package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/storage/sqldb"
)

type DBOptions struct {
	Config    *config.DatabaseConfig
	ConnectTO time.Duration
}

// OpenDB connects to the configured store and makes sure the schema exists.
func OpenDB(ctx context.Context, opt DBOptions) (*sqlx.DB, error) {
	if opt.Config == nil {
		return nil, fmt.Errorf("database config is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db, err := sqldb.Open(cctx, opt.Config)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := sqldb.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}

	return db, nil
}

// OpenRedis returns nil, nil when no address is configured.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
