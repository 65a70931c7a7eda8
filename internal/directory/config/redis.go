package config

import (
	"time"

	"employeedir/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"DIRECTORY_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"DIRECTORY_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"DIRECTORY_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"DIRECTORY_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"DIRECTORY_REDIS_POOL_SIZE" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DIRECTORY_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	KeyPrefix      string        `yaml:"key_prefix" env:"DIRECTORY_REDIS_KEY_PREFIX" env-default:"employeedir:"`
	TTL            time.Duration `yaml:"ttl" env:"DIRECTORY_REDIS_TTL" env-default:"0s"`
}

// ToClientConfig переводит настройки в конфигурацию клиента.
func (c *RedisConfig) ToClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.ConnectTimeout,
	}
}
