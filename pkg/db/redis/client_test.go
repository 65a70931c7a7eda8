package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbredis "employeedir/pkg/db/redis"
)

func configFor(t *testing.T, addr string) *dbredis.Config {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &dbredis.Config{Host: host, Port: port, Timeout: time.Second}
}

func TestNewClient_Success(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := dbredis.NewClient(context.Background(), configFor(t, srv.Addr()))
	require.NoError(t, err)
	require.NotNil(t, client.RawClient())

	assert.NoError(t, client.Close())
}

func TestNewClient_ConnectionFailure(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := configFor(t, srv.Addr())
	cfg.Timeout = 200 * time.Millisecond
	srv.Close()

	client, err := dbredis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), dbredis.ErrConnect)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	client, err := dbredis.NewClient(context.Background(), &dbredis.Config{Port: 6379})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, dbredis.ErrInvalidConfig)
}

func TestConfig_Addr(t *testing.T) {
	cfg := &dbredis.Config{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
