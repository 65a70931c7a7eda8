// Package sqlite хранит снимки коллекции в одной таблице SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/logger"
)

const (
	driverName = "sqlite"

	ErrorFailedToOpen  = "failed to open sqlite database"
	ErrorFailedToInit  = "failed to create snapshots table"
	ErrorFailedToSave  = "failed to save snapshot to sqlite"
	ErrorFailedToLoad  = "failed to load snapshot from sqlite"
	ErrorFailedToClose = "failed to close sqlite database"
)

// Repository реализует persistence.Repository на SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

var _ persistence.Repository = (*Repository)(nil)

// NewRepository открывает базу path и создает таблицу снимков.
func NewRepository(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		path = "employeedir.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorFailedToOpen, err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToOpen, err)
	}
	// Один писатель: SQLite сериализует записи на уровне файла.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToInit, err)
	}

	logger.Log(ctx).Info(ctx, "sqlite snapshot store opened", zap.String("path", path))
	return &Repository{db: db, path: path}, nil
}

// Save вставляет или заменяет снимок.
func (r *Repository) Save(ctx context.Context, key string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSave, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Load читает снимок по ключу.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrSnapshotNotFound
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToLoad, zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}
	return payload, nil
}

// Path возвращает путь к файлу базы.
func (r *Repository) Path() string { return r.path }

// Close закрывает базу.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
