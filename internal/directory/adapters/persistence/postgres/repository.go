// Package postgres хранит снимки коллекции в таблице employee_snapshots.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/logger"
)

// PgxPoolInterface подмножество pgxpool.Pool, нужное репозиторию.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Close()
}

const (
	ErrorFailedToSave = "error saving snapshot"
	ErrorFailedToLoad = "error loading snapshot"
)

// Repository реализует persistence.Repository для Postgres.
type Repository struct {
	pool PgxPoolInterface
}

var _ persistence.Repository = (*Repository)(nil)

// NewRepository создает репозиторий поверх пула.
func NewRepository(pool PgxPoolInterface) *Repository {
	return &Repository{pool: pool}
}

// Save вставляет или заменяет снимок по ключу.
func (r *Repository) Save(ctx context.Context, key string, payload []byte) error {
	log := logger.Log(ctx).With(zap.String("repository", "snapshot"), zap.String("method", "Save"))

	query := `
        INSERT INTO employee_snapshots (key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
        SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
    `

	if _, err := r.pool.Exec(ctx, query, key, payload); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Load возвращает снимок по ключу.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("repository", "snapshot"), zap.String("method", "Load"))

	query := `
        SELECT payload
        FROM employee_snapshots
        WHERE key = $1
    `

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "snapshot not found", zap.String("key", key))
			return nil, persistence.ErrSnapshotNotFound
		}
		log.Error(ctx, ErrorFailedToLoad, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}
	return payload, nil
}

// Close закрывает пул соединений.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
