// Package postgres открывает пул соединений pgx и применяет миграции.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"employeedir/pkg/logger"
)

const (
	LogPoolOpening = "opening postgres pool"
	LogPoolReady   = "postgres pool is ready"

	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Config описывает параметры пула. Нулевые значения не переопределяют DSN.
type Config struct {
	DSN            string
	MinConns       int32
	MaxConns       int32
	ConnectTimeout time.Duration
}

func (c Config) apply(pc *pgxpool.Config) {
	if c.MinConns > 0 {
		pc.MinConns = c.MinConns
	}
	if c.MaxConns > 0 {
		pc.MaxConns = c.MaxConns
	}
	if c.ConnectTimeout > 0 {
		pc.ConnConfig.ConnectTimeout = c.ConnectTimeout
	}
}

// Connect создает пул и проверяет доступность базы.
// Закрытие пула остается за вызывающим.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	log := logger.Log(ctx)

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	cfg.apply(poolCfg)

	log.Debug(ctx, LogPoolOpening,
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogPoolReady,
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return pool, nil
}
