// Package config содержит конфигурацию сервиса справочника сотрудников.
package config

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	pkgconfig "employeedir/pkg/config"
	"employeedir/pkg/logger"
)

const serviceName = "directory"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigSummary    = "directory configuration"
	ErrFailedLoadConfig = "failed to load directory configuration"
)

// ErrUnknownDriver возвращается для неподдерживаемого хранилища снимков.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Logging     LoggingConfig     `yaml:"logging"`
	Shutdown    ShutdownConfig    `yaml:"shutdown"`
	Storage     StorageConfig     `yaml:"storage"`
	File        FileConfig        `yaml:"file"`
	Redis       RedisConfig       `yaml:"redis"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	SQLite      SQLiteConfig      `yaml:"sqlite"`
	Seed        SeedConfig        `yaml:"seed"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Locale      LocaleConfig      `yaml:"locale"`
	Pagination  PaginationConfig  `yaml:"pagination"`
}

// Load читает конфигурацию из envPath (если файл есть) и переменных окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("storage_key", cfg.Storage.Key),
		zap.String("seed_source", cfg.Seed.Source),
		zap.String("default_language", cfg.Locale.Default))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не умеет ограничить.
func (c *Config) Validate() error {
	if !slices.Contains(Drivers, c.Storage.Driver) {
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}
	return nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
