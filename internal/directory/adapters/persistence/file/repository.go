// Package file хранит снимки в локальных файлах <dir>/<key>.json.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/logger"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o750
	filePerm = 0o600

	ErrorFailedToCreateDir = "failed to create snapshot directory"
	ErrorFailedToWrite     = "failed to write snapshot file"
	ErrorFailedToRead      = "failed to read snapshot file"
)

// ErrInvalidKey возвращается для ключей, содержащих разделители пути.
var ErrInvalidKey = errors.New("invalid snapshot key")

// Repository реализует persistence.Repository на файловой системе.
type Repository struct {
	dir string
}

var _ persistence.Repository = (*Repository)(nil)

// NewRepository создает каталог dir при необходимости.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToCreateDir, err)
	}
	return &Repository{dir: dir}, nil
}

// Save атомарно заменяет файл снимка через временный файл и rename.
func (r *Repository) Save(ctx context.Context, key string, payload []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}
	log := logger.Log(ctx).With(zap.String("method", "save"), zap.String("path", path))

	tmp, err := os.CreateTemp(r.dir, "."+key+"-*.tmp")
	if err != nil {
		log.Error(ctx, ErrorFailedToWrite, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		log.Error(ctx, ErrorFailedToWrite, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		log.Error(ctx, ErrorFailedToWrite, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	return nil
}

// Load читает файл снимка.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persistence.ErrSnapshotNotFound
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToRead, zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}
	return payload, nil
}

// Close ничего не делает: файлы не держатся открытыми.
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(r.dir, key+fileExt), nil
}
