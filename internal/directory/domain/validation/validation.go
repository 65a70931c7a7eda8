// Package validation проверяет поля сотрудника по декларативной схеме правил.
// Результат содержит только коды нарушений; текст сообщений формирует слой представления.
package validation

import (
	"regexp"
	"strings"
	"time"

	"employeedir/internal/directory/domain/entities"
)

// Rule идентификатор правила проверки.
type Rule string

// Поддерживаемые правила.
const (
	RuleRequired    Rule = "required"
	RuleEmail       Rule = "email"
	RulePhone       Rule = "phone"
	RuleDate        Rule = "date"
	RuleUniqueEmail Rule = "unique-email"
)

// Коды нарушений. Код обязательности строится как <field>Required.
const (
	CodeEmailInvalid   = "emailInvalid"
	CodeEmailNotUnique = "emailNotUnique"
	CodePhoneInvalid   = "phoneInvalid"
	CodeDateInvalid    = "dateInvalid"

	requiredSuffix = "Required"
	minYear        = 1900
)

// DateLayouts форматы, в которых принимаются даты.
var DateLayouts = []string{time.DateOnly, time.RFC3339}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	phonePattern    = regexp.MustCompile(`^(\+90|90|0)?[1-9]\d{9}$`)
)

// EmailChecker сообщает, свободен ли адрес. excludeID == 0 означает отсутствие исключения.
type EmailChecker interface {
	IsEmailUnique(email string, excludeID int) bool
}

// FieldRules правила одного поля.
type FieldRules struct {
	Field string
	Rules []Rule
}

// Schema упорядоченный набор правил по полям.
type Schema []FieldRules

// DefaultSchema схема формы сотрудника.
var DefaultSchema = Schema{
	{Field: entities.FieldFirstName, Rules: []Rule{RuleRequired}},
	{Field: entities.FieldLastName, Rules: []Rule{RuleRequired}},
	{Field: entities.FieldEmail, Rules: []Rule{RuleRequired, RuleEmail, RuleUniqueEmail}},
	{Field: entities.FieldPhone, Rules: []Rule{RuleRequired, RulePhone}},
	{Field: entities.FieldDepartment, Rules: []Rule{RuleRequired}},
	{Field: entities.FieldPosition, Rules: []Rule{RuleRequired}},
	{Field: entities.FieldDateOfEmployment, Rules: []Rule{RuleRequired, RuleDate}},
	{Field: entities.FieldDateOfBirth, Rules: []Rule{RuleRequired, RuleDate}},
}

// Violations коды нарушений по полям. Отсутствие ключа означает валидное поле.
type Violations map[string][]string

// Valid сообщает об отсутствии нарушений.
func (v Violations) Valid() bool {
	return len(v) == 0
}

// Codes возвращает все коды в порядке полей формы.
func (v Violations) Codes() []string {
	var out []string
	for _, field := range entities.Fields {
		out = append(out, v[field]...)
	}
	return out
}

// RequiredCode возвращает код обязательности для поля.
func RequiredCode(field string) string {
	return field + requiredSuffix
}

// ValidateField проверяет одно значение. Пустое значение дает только код обязательности,
// остальные правила применяются лишь к непустым значениям.
func ValidateField(value string, rules []Rule, field string, checker EmailChecker, excludeID int) []string {
	var codes []string

	if strings.TrimSpace(value) == "" {
		for _, r := range rules {
			if r == RuleRequired {
				return []string{RequiredCode(field)}
			}
		}
		return nil
	}

	for _, r := range rules {
		switch r {
		case RuleEmail:
			if !IsEmail(value) {
				codes = append(codes, CodeEmailInvalid)
			}
		case RulePhone:
			if !IsPhone(value) {
				codes = append(codes, CodePhoneInvalid)
			}
		case RuleDate:
			if !IsDate(value) {
				codes = append(codes, CodeDateInvalid)
			}
		case RuleUniqueEmail:
			if checker != nil && !checker.IsEmailUnique(value, excludeID) {
				codes = append(codes, CodeEmailNotUnique)
			}
		}
	}

	return codes
}

// Validate проверяет все поля формы по схеме без остановки на первой ошибке.
func (s Schema) Validate(in entities.EmployeeInput, checker EmailChecker, excludeID int) Violations {
	violations := make(Violations)
	for _, fr := range s {
		value, _ := in.Field(fr.Field)
		if codes := ValidateField(value, fr.Rules, fr.Field, checker, excludeID); len(codes) > 0 {
			violations[fr.Field] = codes
		}
	}
	return violations
}

// ValidateForm проверяет форму по DefaultSchema.
func ValidateForm(in entities.EmployeeInput, checker EmailChecker, excludeID int) Violations {
	return DefaultSchema.Validate(in, checker, excludeID)
}

// IsEmail проверяет формат адреса.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone проверяет турецкий формат номера после удаления разделителей.
func IsPhone(s string) bool {
	return phonePattern.MatchString(phoneSeparators.ReplaceAllString(s, ""))
}

// IsDate проверяет, что строка является датой с годом позже 1900.
func IsDate(s string) bool {
	t, ok := ParseDate(s)
	return ok && t.Year() > minYear
}

// ParseDate разбирает дату в одном из DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
