package snapshot_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/metrics"
	"employeedir/internal/directory/ports/persistence"
	"employeedir/internal/directory/resilience"
	"employeedir/internal/directory/snapshot"
)

const key = "employees"

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, key string, payload []byte) error {
	return m.Called(ctx, key, payload).Error(0)
}

func (m *mockRepository) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Error(1)
}

func (m *mockRepository) Close() error {
	return m.Called().Error(0)
}

// memoryRepository записывает все сохраненные снимки по порядку.
type memoryRepository struct {
	mu    sync.Mutex
	saves [][]byte
	fail  int
}

func (r *memoryRepository) Save(_ context.Context, _ string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail > 0 {
		r.fail--
		return errors.New("unavailable")
	}
	r.saves = append(r.saves, payload)
	return nil
}

func (r *memoryRepository) Load(context.Context, string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil, persistence.ErrSnapshotNotFound
	}
	return r.saves[len(r.saves)-1], nil
}

func (r *memoryRepository) Close() error { return nil }

func (r *memoryRepository) snapshot() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.saves...)
}

func sample() []entities.Employee {
	return []entities.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
	}
}

func TestEncodeDecode(t *testing.T) {
	payload, err := snapshot.Encode(sample())
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"firstName": "Ada"`)

	got, err := snapshot.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	payload, err := snapshot.Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(payload))
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{"", "null", "{}", "[{", "not json"} {
		t.Run(in, func(t *testing.T) {
			_, err := snapshot.Decode([]byte(in))
			assert.ErrorIs(t, err, snapshot.ErrMalformed)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	valid, err := snapshot.Encode(sample())
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload []byte
		err     error
		want    []entities.Employee
		ok      bool
		result  string
	}{
		{name: "valid snapshot", payload: valid, want: sample(), ok: true, result: metrics.ResultLoaded},
		{name: "missing key", err: persistence.ErrSnapshotNotFound, result: metrics.ResultMissing},
		{name: "storage failure", err: errors.New("connection refused"), result: metrics.ResultError},
		{name: "malformed payload", payload: []byte("{broken"), result: metrics.ResultMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("Load", mock.Anything, key).Return(tt.payload, tt.err).Once()
			m := metrics.New(prometheus.NewRegistry())

			got, ok := snapshot.Load(ctx, repo, key, m)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotLoads.WithLabelValues(tt.result)), 0)
			repo.AssertExpectations(t)
		})
	}
}

func TestWriter_FlushSavesLatestPayload(t *testing.T) {
	repo := &memoryRepository{}
	w := snapshot.NewWriter(repo, key, nil, nil)

	w.Enqueue([]byte("[1]"))
	w.Enqueue([]byte("[2]"))
	w.Enqueue([]byte("[3]"))

	require.NoError(t, w.Flush(context.Background()))
	require.NoError(t, w.Flush(context.Background()), "second flush is a no-op")

	assert.Equal(t, [][]byte{[]byte("[3]")}, repo.snapshot())
}

func TestWriter_RunPersistsInBackground(t *testing.T) {
	repo := &memoryRepository{}
	w := snapshot.NewWriter(repo, key, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	w.Persist(ctx, sample())

	require.Eventually(t, func() bool { return len(repo.snapshot()) > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	got, err := snapshot.Decode(repo.snapshot()[len(repo.snapshot())-1])
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestWriter_RetriesThenSucceeds(t *testing.T) {
	repo := &memoryRepository{fail: 2}
	policy := resilience.NewPolicy("snapshot",
		resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, BackoffFactor: 1},
		resilience.DefaultCircuitBreakerConfig())
	m := metrics.New(prometheus.NewRegistry())
	w := snapshot.NewWriter(repo, key, policy, m)

	w.Enqueue([]byte("[]"))
	require.NoError(t, w.Flush(context.Background()))

	assert.Len(t, repo.snapshot(), 1)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues(metrics.ResultSaved)), 0)
}

func TestWriter_DropsAfterFinalFailure(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Save", mock.Anything, key, []byte("[]")).Return(errors.New("disk full"))

	m := metrics.New(prometheus.NewRegistry())
	w := snapshot.NewWriter(repo, key, nil, m)

	w.Enqueue([]byte("[]"))
	err := w.Flush(context.Background())

	require.Error(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues(metrics.ResultDropped)), 0)
	require.NoError(t, w.Flush(context.Background()), "dropped payload is not retried later")
	repo.AssertNumberOfCalls(t, "Save", 1)
}

// blockingRepository держит Save до release и учитывает отмену контекста.
type blockingRepository struct {
	memoryRepository
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRepository) Save(ctx context.Context, k string, payload []byte) error {
	r.once.Do(func() { close(r.started) })
	select {
	case <-r.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.memoryRepository.Save(ctx, k, payload)
}

func TestWriter_StopDuringSaveKeepsPayload(t *testing.T) {
	repo := &blockingRepository{started: make(chan struct{}), release: make(chan struct{})}
	w := snapshot.NewWriter(repo, key, nil, nil)

	runCtx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(runCtx) }()

	w.Enqueue([]byte("[1]"))

	select {
	case <-repo.started:
	case <-time.After(time.Second):
		t.Fatal("save did not start")
	}

	stop()
	close(repo.release)
	require.NoError(t, <-done)

	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t, [][]byte{[]byte("[1]")}, repo.snapshot())
}
