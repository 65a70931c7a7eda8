package config

import (
	"fmt"
	"net/url"
	"time"

	"employeedir/pkg/db/postgres"
)

// PostgresConfig представляет конфигурацию подключения к Postgres.
type PostgresConfig struct {
	Host           string        `yaml:"host" env:"DIRECTORY_POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"DIRECTORY_POSTGRES_PORT" env-default:"5432"`
	User           string        `yaml:"user" env:"DIRECTORY_POSTGRES_USER" env-default:"postgres"`
	Password       string        `yaml:"password" env:"DIRECTORY_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string        `yaml:"database" env:"DIRECTORY_POSTGRES_DB" env-default:"employeedir"`
	SSLMode        string        `yaml:"ssl_mode" env:"DIRECTORY_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConns       int32         `yaml:"min_conns" env:"DIRECTORY_POSTGRES_MIN_CONNS" env-default:"1"`
	MaxConns       int32         `yaml:"max_conns" env:"DIRECTORY_POSTGRES_MAX_CONNS" env-default:"5"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DIRECTORY_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
	MigrationsPath string        `yaml:"migrations_path" env:"DIRECTORY_POSTGRES_MIGRATIONS_PATH" env-default:"file://migrations/directory"`
}

// GetDSN возвращает строку подключения в формате URL.
func (c *PostgresConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// ToPoolConfig переводит настройки в конфигурацию пула.
func (c *PostgresConfig) ToPoolConfig() postgres.Config {
	return postgres.Config{
		DSN:            c.GetDSN(),
		MinConns:       c.MinConns,
		MaxConns:       c.MaxConns,
		ConnectTimeout: c.ConnectTimeout,
	}
}
