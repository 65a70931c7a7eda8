package i18n

import (
	"strings"
	"time"
)

// InvalidDate возвращается FormatDate для неразбираемой даты.
const InvalidDate = "invalid-date"

// Positions допустимые должности.
var Positions = []string{"Junior", "Medior", "Senior"}

// Departments известные отделы.
var Departments = []string{"Analytics", "Tech"}

var displayLayouts = map[string]string{
	"en": "02/01/2006",
	"tr": "02.01.2006",
}

var inputLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate форматирует дату для отображения на языке lang (день, месяц, год).
func (c *Catalog) FormatDate(lang, s string) string {
	if s == "" {
		return ""
	}
	t, ok := parseDate(s)
	if !ok {
		return InvalidDate
	}
	layout, ok := displayLayouts[lang]
	if !ok {
		layout = displayLayouts[c.fallback]
	}
	if layout == "" {
		layout = displayLayouts[DefaultLanguage]
	}
	return t.Format(layout)
}

// FormatDateForInput приводит дату к виду YYYY-MM-DD, для мусора возвращает "".
func FormatDateForInput(s string) string {
	if s == "" {
		return ""
	}
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// Department переводит название отдела, если для него есть ключ.
func (c *Catalog) Department(lang, department string) string {
	return c.label(lang, department)
}

// Position переводит название должности, если для него есть ключ.
func (c *Catalog) Position(lang, position string) string {
	return c.label(lang, position)
}

func (c *Catalog) label(lang, value string) string {
	if value == "" {
		return ""
	}
	key := strings.ToLower(value)
	if translated := c.Translate(lang, key, nil); translated != key {
		return translated
	}
	return value
}
