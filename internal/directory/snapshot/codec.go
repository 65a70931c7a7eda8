// Package snapshot сериализует коллекцию сотрудников и асинхронно сохраняет ее снимки.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"employeedir/internal/directory/domain/entities"
)

// ErrMalformed возвращается Decode для поврежденного снимка.
var ErrMalformed = errors.New("malformed snapshot")

const errEncode = "failed to encode snapshot"

// Encode сериализует коллекцию в JSON-массив с отступами.
func Encode(employees []entities.Employee) ([]byte, error) {
	if employees == nil {
		employees = []entities.Employee{}
	}
	payload, err := json.MarshalIndent(employees, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errEncode, err)
	}
	return payload, nil
}

// Decode разбирает JSON-массив сотрудников.
// Пустой ввод, литерал null и значения не-массивы считаются поврежденными.
func Decode(payload []byte) ([]entities.Employee, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformed
	}

	var employees []entities.Employee
	if err := json.Unmarshal(trimmed, &employees); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return employees, nil
}
