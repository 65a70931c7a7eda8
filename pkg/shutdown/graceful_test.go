package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeedir/pkg/shutdown"
)

func TestWait_ContextCancelRunsHooks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(ctx, time.Second, hook, hook)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancel")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestRun_CollectsHookErrors(t *testing.T) {
	errA := errors.New("a failed")

	err := shutdown.Run(context.Background(), time.Second,
		func(context.Context) error { return errA },
		func(context.Context) error { return nil },
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
}

func TestRun_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	err := shutdown.Run(context.Background(), 50*time.Millisecond,
		func(context.Context) error {
			<-release
			return nil
		},
	)

	assert.ErrorIs(t, err, shutdown.ErrTimeout)
}

func TestRun_HooksSeeLiveContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	var sawErr error
	err := shutdown.Run(context.WithoutCancel(parent), time.Second, func(ctx context.Context) error {
		sawErr = ctx.Err()
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, sawErr)
}
