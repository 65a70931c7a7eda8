// Package sanitize очищает пользовательский ввод от разметки и опасных конструкций.
package sanitize

import (
	"regexp"
	"strings"

	"employeedir/internal/directory/domain/entities"
)

var (
	scriptBlock  = regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
	jsScheme     = regexp.MustCompile(`(?i)javascript:`)
	eventHandler = regexp.MustCompile(`(?i)on\w+\s*=`)
	emailUnsafe  = regexp.MustCompile(`[<>"'&]`)
	phoneUnsafe  = regexp.MustCompile(`[^0-9\s\-()+]`)
)

// Text удаляет блоки script, остальные теги, схему javascript:
// и атрибуты обработчиков событий, затем обрезает пробелы.
// Порядок шагов важен: сначала script целиком, потом одиночные теги.
func Text(s string) string {
	if s == "" {
		return s
	}
	s = scriptBlock.ReplaceAllString(s, "")
	s = anyTag.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = eventHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Email приводит адрес к нижнему регистру и удаляет символы <>"'&.
func Email(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(emailUnsafe.ReplaceAllString(strings.ToLower(s), ""))
}

// Phone оставляет только цифры, пробелы, дефисы, скобки и плюс.
func Phone(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(phoneUnsafe.ReplaceAllString(s, ""))
}

// Input применяет подходящий фильтр к каждому полю формы.
func Input(in entities.EmployeeInput) entities.EmployeeInput {
	return entities.EmployeeInput{
		FirstName:        Text(in.FirstName),
		LastName:         Text(in.LastName),
		Email:            Email(in.Email),
		Phone:            Phone(in.Phone),
		Department:       Text(in.Department),
		Position:         Text(in.Position),
		DateOfEmployment: Text(in.DateOfEmployment),
		DateOfBirth:      Text(in.DateOfBirth),
	}
}
