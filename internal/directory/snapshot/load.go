package snapshot

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/metrics"
	"employeedir/internal/directory/ports/persistence"
	"employeedir/pkg/logger"
)

const (
	LogSnapshotMissing   = "no persisted snapshot found"
	LogSnapshotMalformed = "persisted snapshot is malformed, ignoring it"
	LogSnapshotLoadError = "failed to load persisted snapshot"
	LogSnapshotLoaded    = "persisted snapshot loaded"
)

// Load читает снимок из repo. Отсутствие, ошибка хранилища или
// поврежденные данные дают (nil, false); ошибка наружу не передается.
func Load(ctx context.Context, repo persistence.Repository, key string, m *metrics.Metrics) ([]entities.Employee, bool) {
	log := logger.Log(ctx).With(zap.String("snapshot_key", key))

	payload, err := repo.Load(ctx, key)
	if err != nil {
		if errors.Is(err, persistence.ErrSnapshotNotFound) {
			log.Info(ctx, LogSnapshotMissing)
			m.ObserveSnapshotLoad(metrics.ResultMissing)
			return nil, false
		}
		log.Warn(ctx, LogSnapshotLoadError, zap.Error(err))
		m.ObserveSnapshotLoad(metrics.ResultError)
		return nil, false
	}

	employees, err := Decode(payload)
	if err != nil {
		log.Warn(ctx, LogSnapshotMalformed, zap.Error(err))
		m.ObserveSnapshotLoad(metrics.ResultMalformed)
		return nil, false
	}

	log.Info(ctx, LogSnapshotLoaded, zap.Int("employees", len(employees)))
	m.ObserveSnapshotLoad(metrics.ResultLoaded)
	return employees, true
}
