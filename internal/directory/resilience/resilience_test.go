package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	r := NewRetry("test", fastRetry(3))

	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	r := NewRetry("test", fastRetry(2))

	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}

func TestRetry_NonRetryableError(t *testing.T) {
	cfg := fastRetry(5)
	cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, errBoom) }
	r := NewRetry("test", cfg)

	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	cfg := fastRetry(3)
	cfg.InitialBackoff = time.Hour
	r := NewRetry("test", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	err := r.Execute(ctx, func() error {
		cancel()
		return errBoom
	})

	assert.ErrorIs(t, err, ErrContextCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Minute, SuccessThreshold: 1})
	cb.now = func() time.Time { return now }

	var transitions []CircuitState
	cb.OnStateChange(func(s CircuitState) { transitions = append(transitions, s) })

	ctx := context.Background()
	fail := func() error { return errBoom }
	ok := func() error { return nil }

	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateClosed, cb.GetState())
	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, cb.GetState())

	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitOpen)

	now = now.Add(time.Minute)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.GetState())

	assert.Equal(t, []CircuitState{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{ErrorThreshold: 1, Timeout: time.Second, SuccessThreshold: 2})
	cb.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cb.Execute(ctx, func() error { return errBoom })
	require.Equal(t, StateOpen, cb.GetState())

	now = now.Add(time.Second)
	_ = cb.Execute(ctx, func() error { return errBoom })
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Second, SuccessThreshold: 1})
	ctx := context.Background()

	_ = cb.Execute(ctx, func() error { return errBoom })
	_ = cb.Execute(ctx, func() error { return nil })
	_ = cb.Execute(ctx, func() error { return errBoom })

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestPolicy_Execute(t *testing.T) {
	p := NewPolicy("test", fastRetry(2), CircuitBreakerConfig{ErrorThreshold: 1, Timeout: time.Hour, SuccessThreshold: 1})
	ctx := context.Background()

	calls := 0
	err := p.Execute(ctx, "save", func() error {
		calls++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls, "retries run inside a single breaker call")
	assert.Equal(t, StateOpen, p.CircuitBreaker().GetState())

	err = p.Execute(ctx, "save", func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}
