// Package services описывает сервисы, доступные транспортному слою.
package services

import (
	"context"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/domain/pagination"
	"employeedir/internal/directory/domain/validation"
)

// DirectoryService сценарии справочника сотрудников.
type DirectoryService interface {
	Create(ctx context.Context, in entities.EmployeeInput) (entities.Employee, error)
	Update(ctx context.Context, id int, in entities.EmployeeInput) (entities.Employee, error)
	Delete(ctx context.Context, id int) (entities.Employee, error)
	Get(id int) (entities.Employee, error)
	List(query string, page, perPage int) pagination.Page[entities.Employee]

	Language() string
	ChangeLanguage(ctx context.Context, code string) (string, error)
	Messages(v validation.Violations, lang string) map[string][]string
	Translate(lang, key string, replacements map[string]string) string
}
