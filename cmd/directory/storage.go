package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	filerepo "employeedir/internal/directory/adapters/persistence/file"
	postgresrepo "employeedir/internal/directory/adapters/persistence/postgres"
	redisrepo "employeedir/internal/directory/adapters/persistence/redis"
	sqliterepo "employeedir/internal/directory/adapters/persistence/sqlite"
	"employeedir/internal/directory/config"
	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/db/postgres"
	"employeedir/pkg/db/redis"
	"employeedir/pkg/logger"
)

const (
	LogInitStorage       = "initializing snapshot storage"
	ErrCreateFileRepo    = "failed to create file repository"
	ErrCreateRedisClient = "failed to create Redis client"
	ErrConnectPostgres   = "failed to connect to Postgres"
	ErrMigratePostgres   = "failed to apply Postgres migrations"
	ErrOpenSQLite        = "failed to open SQLite database"
)

// newRepository открывает хранилище снимков выбранного драйвера.
func newRepository(ctx context.Context, cfg *config.Config) (persistence.Repository, error) {
	logger.Log(ctx).Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis.ToClientConfig())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
		}
		return redisrepo.NewRepository(client.RawClient(), cfg.Redis.KeyPrefix, cfg.Redis.TTL), nil

	case config.DriverPostgres:
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MigrationsPath); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMigratePostgres, err)
		}
		pool, err := postgres.Connect(ctx, cfg.Postgres.ToPoolConfig())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrConnectPostgres, err)
		}
		return postgresrepo.NewRepository(pool), nil

	case config.DriverSQLite:
		repo, err := sqliterepo.NewRepository(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenSQLite, err)
		}
		return repo, nil

	default:
		repo, err := filerepo.NewRepository(cfg.File.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateFileRepo, err)
		}
		return repo, nil
	}
}
