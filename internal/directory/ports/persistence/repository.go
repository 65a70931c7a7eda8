// Package persistence описывает хранилище снимков коллекции сотрудников.
package persistence

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound возвращается Load, если по ключу ничего не сохранено.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Repository хранит сериализованный снимок под фиксированным ключом.
type Repository interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Close() error
}
