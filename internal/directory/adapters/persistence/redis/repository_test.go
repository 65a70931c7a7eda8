package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeedir/internal/directory/adapters/persistence/redis"
	"employeedir/internal/directory/ports/persistence"
)

func setup(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *redis.Repository) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	repo := redis.NewRepository(client, "employeedir:", ttl)
	t.Cleanup(func() { _ = repo.Close() })

	return srv, repo
}

func TestRepository_SaveLoad(t *testing.T) {
	srv, repo := setup(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "employees", []byte(`[{"id":1}]`)))

	raw, err := srv.Get("employeedir:employees")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, raw)
	assert.Zero(t, srv.TTL("employeedir:employees"))

	got, err := repo.Load(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)
}

func TestRepository_LoadMissing(t *testing.T) {
	_, repo := setup(t, 0)

	_, err := repo.Load(context.Background(), "employees")
	assert.ErrorIs(t, err, persistence.ErrSnapshotNotFound)
}

func TestRepository_TTL(t *testing.T) {
	srv, repo := setup(t, time.Hour)

	require.NoError(t, repo.Save(context.Background(), "employees", []byte(`[]`)))
	assert.Equal(t, time.Hour, srv.TTL("employeedir:employees"))

	srv.FastForward(2 * time.Hour)
	_, err := repo.Load(context.Background(), "employees")
	assert.ErrorIs(t, err, persistence.ErrSnapshotNotFound)
}

func TestRepository_ServerDown(t *testing.T) {
	srv, repo := setup(t, 0)
	srv.Close()
	ctx := context.Background()

	err := repo.Save(ctx, "employees", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), redis.ErrorFailedToSave)

	_, err = repo.Load(ctx, "employees")
	require.Error(t, err)
	assert.NotErrorIs(t, err, persistence.ErrSnapshotNotFound)
}
