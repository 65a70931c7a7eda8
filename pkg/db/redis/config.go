// Package redis подключает клиент go-redis с проверкой соединения.
package redis

import (
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidConfig возвращается для конфигурации без адреса.
var ErrInvalidConfig = errors.New("invalid redis config")

// Config содержит настройки подключения к Redis.
// Нулевые PoolSize и Timeout оставляют значения go-redis по умолчанию.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// Addr возвращает адрес в формате host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) validate() error {
	if c.Host == "" || c.Port <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (c *Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.Timeout,
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	}
}
