// Package redis хранит снимки коллекции в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/logger"
)

const (
	LogMethodLoad  = "load"
	LogMethodSave  = "save"
	LogMethodClose = "close"

	ErrorFailedToLoad  = "failed to load snapshot from redis"
	ErrorFailedToSave  = "failed to save snapshot to redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// Repository реализует persistence.Repository поверх Redis.
type Repository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ persistence.Repository = (*Repository)(nil)

// NewRepository создает репозиторий. Ключи получают префикс prefix,
// ttl == 0 означает хранение без срока.
func NewRepository(client *redis.Client, prefix string, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Save записывает снимок.
func (r *Repository) Save(ctx context.Context, key string, payload []byte) error {
	fullKey := r.prefix + key
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave), zap.String("key", fullKey))

	if err := r.client.Set(ctx, fullKey, payload, r.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Load читает снимок. Отсутствующий ключ дает persistence.ErrSnapshotNotFound.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	fullKey := r.prefix + key
	log := logger.Log(ctx).With(zap.String("method", LogMethodLoad), zap.String("key", fullKey))

	payload, err := r.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.ErrSnapshotNotFound
		}
		log.Error(ctx, ErrorFailedToLoad, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}
	return payload, nil
}

// Close закрывает соединение с Redis.
func (r *Repository) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
