package config

// LocaleConfig язык интерфейса при старте.
type LocaleConfig struct {
	Default string `yaml:"default" env:"DIRECTORY_LOCALE_DEFAULT" env-default:"en"`
}
