package config

// Драйверы хранилища снимков.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Drivers перечисляет поддерживаемые драйверы.
var Drivers = []string{DriverFile, DriverRedis, DriverPostgres, DriverSQLite}

// StorageConfig выбирает, где хранится снимок коллекции.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DIRECTORY_STORAGE_DRIVER" env-default:"file"`
	Key    string `yaml:"key" env:"DIRECTORY_STORAGE_KEY" env-default:"employees"`
}

// FileConfig каталог файлового хранилища.
type FileConfig struct {
	Dir string `yaml:"dir" env:"DIRECTORY_FILE_DIR" env-default:"./data"`
}

// SQLiteConfig путь к файлу базы SQLite.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"DIRECTORY_SQLITE_PATH" env-default:"./data/directory.db"`
}
