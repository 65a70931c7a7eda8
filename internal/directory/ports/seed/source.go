// Package seed описывает источник начальных данных.
package seed

import (
	"context"

	"employeedir/internal/directory/domain/entities"
)

// Source возвращает начальный набор сотрудников.
type Source interface {
	Load(ctx context.Context) ([]entities.Employee, error)
}
