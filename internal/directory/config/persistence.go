package config

import (
	"time"

	"employeedir/internal/directory/resilience"
)

// PersistenceConfig параметры повторов и автомата для записи снимков.
type PersistenceConfig struct {
	RetryMaxAttempts      int           `yaml:"retry_max_attempts" env:"DIRECTORY_PERSIST_RETRY_MAX_ATTEMPTS" env-default:"3"`
	RetryInitialBackoff   time.Duration `yaml:"retry_initial_backoff" env:"DIRECTORY_PERSIST_RETRY_INITIAL_BACKOFF" env-default:"100ms"`
	RetryMaxBackoff       time.Duration `yaml:"retry_max_backoff" env:"DIRECTORY_PERSIST_RETRY_MAX_BACKOFF" env-default:"2s"`
	RetryBackoffFactor    float64       `yaml:"retry_backoff_factor" env:"DIRECTORY_PERSIST_RETRY_BACKOFF_FACTOR" env-default:"2"`
	BreakerErrorThreshold int           `yaml:"breaker_error_threshold" env:"DIRECTORY_PERSIST_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout        time.Duration `yaml:"breaker_timeout" env:"DIRECTORY_PERSIST_BREAKER_TIMEOUT" env-default:"30s"`
	BreakerSuccesses      int           `yaml:"breaker_successes" env:"DIRECTORY_PERSIST_BREAKER_SUCCESSES" env-default:"2"`
}

// RetryConfig возвращает настройки повторов.
func (c *PersistenceConfig) RetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.RetryMaxAttempts
	cfg.InitialBackoff = c.RetryInitialBackoff
	cfg.MaxBackoff = c.RetryMaxBackoff
	cfg.BackoffFactor = c.RetryBackoffFactor
	return cfg
}

// CircuitBreakerConfig возвращает настройки автомата.
func (c *PersistenceConfig) CircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.BreakerErrorThreshold,
		Timeout:          c.BreakerTimeout,
		SuccessThreshold: c.BreakerSuccesses,
	}
}
