package config

import "time"

// SeedConfig источник начальных данных: путь к файлу или http(s) URL.
// Пустой Source отключает загрузку.
type SeedConfig struct {
	Source  string        `yaml:"source" env:"DIRECTORY_SEED_SOURCE" env-default:"deploy/seed/employees.json"`
	Timeout time.Duration `yaml:"timeout" env:"DIRECTORY_SEED_TIMEOUT" env-default:"10s"`
}
