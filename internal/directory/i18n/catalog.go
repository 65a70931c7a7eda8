// Package i18n хранит таблицы переводов и выбирает язык интерфейса.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage язык, к которому откатывается перевод.
const DefaultLanguage = "en"

const (
	localesDir = "locales"
	localeExt  = ".yaml"

	errReadLocales     = "failed to read locales"
	errParseLocale     = "failed to parse locale"
	errInvalidLanguage = "invalid language code"
)

// ErrMissingFallback возвращается, если нет таблицы для языка по умолчанию.
var ErrMissingFallback = errors.New("fallback locale table is missing")

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog набор таблиц ключ -> текст по языкам. После создания только читается.
type Catalog struct {
	tables    map[string]map[string]string
	languages []string
	fallback  string
	matcher   language.Matcher
}

// NewCatalog загружает встроенные таблицы en и tr.
func NewCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embedded, localesDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errReadLocales, err)
	}
	return LoadCatalog(sub, DefaultLanguage)
}

// LoadCatalog читает все *.yaml из корня fsys. Имя файла задает код языка.
func LoadCatalog(fsys fs.FS, fallback string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errReadLocales, err)
	}

	tables := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != localeExt {
			continue
		}
		code := strings.TrimSuffix(entry.Name(), localeExt)
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("%s %q: %w", errInvalidLanguage, code, err)
		}

		raw, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errReadLocales, err)
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("%s %s: %w", errParseLocale, code, err)
		}
		tables[code] = table
	}

	return newCatalog(tables, fallback)
}

func newCatalog(tables map[string]map[string]string, fallback string) (*Catalog, error) {
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingFallback, fallback)
	}

	languages := make([]string, 0, len(tables))
	for code := range tables {
		if code != fallback {
			languages = append(languages, code)
		}
	}
	slices.Sort(languages)
	languages = append([]string{fallback}, languages...)

	// Первый тег матчера используется, когда совпадений нет.
	tags := make([]language.Tag, len(languages))
	for i, code := range languages {
		tags[i] = language.Make(code)
	}

	return &Catalog{
		tables:    tables,
		languages: languages,
		fallback:  fallback,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Languages возвращает известные коды, язык по умолчанию первым.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Fallback возвращает язык по умолчанию.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Has сообщает, есть ли таблица для кода.
func (c *Catalog) Has(code string) bool {
	_, ok := c.tables[code]
	return ok
}

// Translate ищет ключ в таблице lang, затем в таблице по умолчанию,
// иначе возвращает сам ключ. Вхождения {name} заменяются из replacements.
func (c *Catalog) Translate(lang, key string, replacements map[string]string) string {
	text, ok := c.tables[lang][key]
	if !ok {
		text, ok = c.tables[c.fallback][key]
	}
	if !ok {
		text = key
	}
	if len(replacements) == 0 {
		return text
	}

	pairs := make([]string, 0, len(replacements)*2)
	for name, value := range replacements {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Detect выбирает язык по заголовку Accept-Language.
// При отсутствии совпадения возвращается язык по умолчанию.
func (c *Catalog) Detect(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.languages[idx]
}

// Normalize приводит код вида "tr-TR" к известному коду "tr".
func (c *Catalog) Normalize(code string) (string, bool) {
	if c.Has(code) {
		return code, true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if c.Has(base.String()) {
		return base.String(), true
	}
	return "", false
}
