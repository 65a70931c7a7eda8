package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"employeedir/pkg/logger"
)

const (
	LogDialing = "dialing redis"
	LogReady   = "redis is ready"

	ErrConnect = "failed to connect to redis"
	ErrClose   = "failed to close redis connection"

	pingTimeout = 5 * time.Second
)

// Client держит клиент go-redis, прошедший PING.
type Client struct {
	rdb *redis.Client
}

// NewClient открывает клиент и проверяет его командой PING.
// Клиент закрывается, если Redis не ответил.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log := logger.Log(ctx).With(zap.String("redis_addr", cfg.Addr()), zap.Int("redis_db", cfg.DB))
	log.Debug(ctx, LogDialing)

	rdb := redis.NewClient(cfg.options())

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error(ctx, ErrConnect, zap.Error(err))
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogReady)
	return &Client{rdb: rdb}, nil
}

// RawClient возвращает клиент go-redis. Владение передается вызывающему.
func (c *Client) RawClient() *redis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrClose, err)
	}
	return nil
}
