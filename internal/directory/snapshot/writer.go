package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/metrics"
	"employeedir/internal/directory/ports/persistence"
	"employeedir/internal/directory/resilience"
	"employeedir/pkg/logger"
)

const (
	LogWriterStarted  = "snapshot writer started"
	LogWriterStopped  = "snapshot writer stopped"
	LogSnapshotSaved  = "snapshot saved"
	LogSnapshotDrop   = "snapshot write failed, dropping it"
	LogSnapshotEncode = "failed to encode snapshot"

	operationSave = "save_snapshot"
	errSave       = "failed to save snapshot"
)

// Writer сохраняет снимки в фоне. Из нескольких ожидающих снимков
// записывается только последний; мутатор хранилища никогда не ждет записи.
type Writer struct {
	repo    persistence.Repository
	key     string
	policy  *resilience.Policy
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending []byte
	signal  chan struct{}

	// saveMu упорядочивает записи между Run и Flush.
	saveMu sync.Mutex
}

// NewWriter создает Writer. policy и m могут быть nil.
func NewWriter(repo persistence.Repository, key string, policy *resilience.Policy, m *metrics.Metrics) *Writer {
	if policy != nil && m != nil {
		policy.CircuitBreaker().OnStateChange(func(s resilience.CircuitState) {
			m.SetCircuitState(int(s))
		})
	}
	return &Writer{
		repo:    repo,
		key:     key,
		policy:  policy,
		metrics: m,
		signal:  make(chan struct{}, 1),
	}
}

// Persist кодирует коллекцию и ставит снимок в очередь.
func (w *Writer) Persist(ctx context.Context, employees []entities.Employee) {
	payload, err := Encode(employees)
	if err != nil {
		logger.Log(ctx).Error(ctx, LogSnapshotEncode, zap.Error(err))
		return
	}
	w.Enqueue(payload)
}

// Enqueue заменяет ожидающий снимок и будит фоновый цикл.
func (w *Writer) Enqueue(payload []byte) {
	w.mu.Lock()
	w.pending = payload
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// Run записывает ожидающие снимки до отмены ctx. Отмена ctx не прерывает
// уже начатую запись. Оставшийся снимок после остановки сохраняется через Flush.
func (w *Writer) Run(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("snapshot_key", w.key))
	log.Info(ctx, LogWriterStarted)

	// Начатая запись доводится до конца даже после остановки цикла.
	saveCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, LogWriterStopped)
			return nil
		case <-w.signal:
			// Ошибка уже залогирована и учтена в метриках.
			_ = w.Flush(saveCtx)
		}
	}
}

// Flush синхронно записывает ожидающий снимок, если он есть.
func (w *Writer) Flush(ctx context.Context) error {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.Lock()
	payload := w.pending
	w.pending = nil
	w.mu.Unlock()

	if payload == nil {
		return nil
	}
	return w.save(ctx, payload)
}

func (w *Writer) save(ctx context.Context, payload []byte) error {
	log := logger.Log(ctx).With(zap.String("snapshot_key", w.key))
	start := time.Now()

	op := func() error { return w.repo.Save(ctx, w.key, payload) }

	var err error
	if w.policy != nil {
		err = w.policy.Execute(ctx, operationSave, op)
	} else {
		err = op()
	}

	if err != nil {
		log.Warn(ctx, LogSnapshotDrop, zap.Error(err), zap.Int("bytes", len(payload)))
		w.metrics.ObserveSnapshotWrite(metrics.ResultDropped, start)
		return fmt.Errorf("%s: %w", errSave, err)
	}

	log.Debug(ctx, LogSnapshotSaved, zap.Int("bytes", len(payload)))
	w.metrics.ObserveSnapshotWrite(metrics.ResultSaved, start)
	return nil
}
