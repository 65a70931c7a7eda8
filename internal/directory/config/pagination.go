package config

// PaginationConfig размеры страниц HTTP API.
type PaginationConfig struct {
	DefaultPerPage int `yaml:"default_per_page" env:"DIRECTORY_PAGINATION_DEFAULT_PER_PAGE" env-default:"10"`
	MaxPerPage     int `yaml:"max_per_page" env:"DIRECTORY_PAGINATION_MAX_PER_PAGE" env-default:"100"`
}

// Clamp приводит запрошенный размер страницы к допустимому.
// Значение меньше 1 заменяется размером по умолчанию.
func (c *PaginationConfig) Clamp(perPage int) int {
	if perPage < 1 {
		return c.DefaultPerPage
	}
	return min(perPage, c.MaxPerPage)
}
