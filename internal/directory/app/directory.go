// Package app реализует сценарии работы со справочником сотрудников.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/domain/pagination"
	"employeedir/internal/directory/domain/sanitize"
	"employeedir/internal/directory/domain/validation"
	"employeedir/internal/directory/i18n"
	"employeedir/internal/directory/metrics"
	"employeedir/internal/directory/ports/persistence"
	"employeedir/internal/directory/ports/seed"
	"employeedir/internal/directory/snapshot"
	"employeedir/internal/directory/store"
	"employeedir/pkg/logger"
)

// Ошибки уровня сценариев.
var (
	ErrNotFound        = errors.New("employee not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Источник данных при старте.
const (
	SourceSnapshot = "snapshot"
	SourceSeed     = "seed"
	SourceEmpty    = "empty"
)

const (
	LogBootstrap        = "bootstrapping employee directory"
	LogBootstrapDone    = "employee directory ready"
	LogSeedFailed       = "failed to load seed data, starting empty"
	LogSeedRejected     = "seed data violates store invariants, starting empty"
	LogSnapshotRejected = "persisted snapshot violates store invariants, falling back to seed"
	LogEmployeeAdded    = "employee added"
	LogEmployeeUpdate   = "employee updated"
	LogEmployeeDelete   = "employee deleted"
	LogValidation       = "employee form rejected"
)

// ValidationError содержит нарушения по полям формы.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Violations.Codes(), ", "))
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Directory сценарии справочника поверх хранилища.
//
// Проверка формы и мутация выполняются под одним mu, иначе два запроса
// с одинаковым адресом могут оба пройти проверку уникальности.
type Directory struct {
	mu sync.Mutex

	store   *store.Store
	catalog *i18n.Catalog
	repo    persistence.Repository
	seed    seed.Source
	key     string
	metrics *metrics.Metrics
}

// NewDirectory создает сервис. repo и source используются только при Bootstrap и могут быть nil.
func NewDirectory(s *store.Store, catalog *i18n.Catalog, repo persistence.Repository, source seed.Source, key string, m *metrics.Metrics) *Directory {
	return &Directory{
		store:   s,
		catalog: catalog,
		repo:    repo,
		seed:    source,
		key:     key,
		metrics: m,
	}
}

// Store возвращает хранилище для подписки на события.
func (d *Directory) Store() *store.Store {
	return d.store
}

// Catalog возвращает таблицы переводов.
func (d *Directory) Catalog() *i18n.Catalog {
	return d.catalog
}

// Bootstrap заполняет хранилище сохраненным снимком, а если его нет
// или он пуст, то начальными данными. Ошибки источников не прерывают запуск.
func (d *Directory) Bootstrap(ctx context.Context) string {
	log := logger.Log(ctx)
	log.Info(ctx, LogBootstrap, zap.String("snapshot_key", d.key))

	source := d.bootstrap(ctx)

	log.Info(ctx, LogBootstrapDone,
		zap.String("source", source),
		zap.Int("employees", d.store.Len()))
	return source
}

func (d *Directory) bootstrap(ctx context.Context) string {
	log := logger.Log(ctx)

	if d.repo != nil {
		if employees, ok := snapshot.Load(ctx, d.repo, d.key, d.metrics); ok && len(employees) > 0 {
			err := d.store.SetEmployees(ctx, employees)
			if err == nil {
				return SourceSnapshot
			}
			log.Warn(ctx, LogSnapshotRejected, zap.Error(err))
		}
	}

	if d.seed == nil {
		return SourceEmpty
	}

	employees, err := d.seed.Load(ctx)
	if err != nil {
		log.Warn(ctx, LogSeedFailed, zap.Error(err))
		return SourceEmpty
	}
	if err := d.store.SetEmployees(ctx, employees); err != nil {
		log.Warn(ctx, LogSeedRejected, zap.Error(err))
		return SourceEmpty
	}
	return SourceSeed
}

// Create очищает и проверяет форму, затем добавляет сотрудника.
func (d *Directory) Create(ctx context.Context, in entities.EmployeeInput) (entities.Employee, error) {
	in = sanitize.Input(in)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.validate(ctx, in, 0); err != nil {
		return entities.Employee{}, err
	}

	created := d.store.Add(ctx, in)
	logger.Log(ctx).Info(ctx, LogEmployeeAdded, zap.Int("id", created.ID))
	return created, nil
}

// Update очищает и проверяет форму, затем заменяет поля сотрудника id.
func (d *Directory) Update(ctx context.Context, id int, in entities.EmployeeInput) (entities.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.store.GetByID(id); !ok {
		return entities.Employee{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	in = sanitize.Input(in)
	if err := d.validate(ctx, in, id); err != nil {
		return entities.Employee{}, err
	}

	updated, err := d.store.Update(ctx, id, in)
	if err != nil {
		return entities.Employee{}, mapStoreError(err)
	}
	logger.Log(ctx).Info(ctx, LogEmployeeUpdate, zap.Int("id", id))
	return updated, nil
}

// Delete удаляет сотрудника и возвращает удаленную запись.
func (d *Directory) Delete(ctx context.Context, id int) (entities.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed, err := d.store.Delete(ctx, id)
	if err != nil {
		return entities.Employee{}, mapStoreError(err)
	}
	logger.Log(ctx).Info(ctx, LogEmployeeDelete, zap.Int("id", id))
	return removed, nil
}

// Get возвращает сотрудника по идентификатору.
func (d *Directory) Get(id int) (entities.Employee, error) {
	e, ok := d.store.GetByID(id)
	if !ok {
		return entities.Employee{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return e, nil
}

// List ищет по очищенному запросу и возвращает страницу результатов.
func (d *Directory) List(query string, page, perPage int) pagination.Page[entities.Employee] {
	return pagination.Paginate(d.store.Search(sanitize.Text(query)), page, perPage)
}

// Language возвращает активный язык.
func (d *Directory) Language() string {
	return d.store.Language()
}

// ChangeLanguage переключает язык. Принимаются и региональные коды вида tr-TR.
func (d *Directory) ChangeLanguage(ctx context.Context, code string) (string, error) {
	normalized, ok := d.catalog.Normalize(code)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	if err := d.store.SetLanguage(ctx, normalized); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownLanguage, err)
	}
	return normalized, nil
}

// Messages переводит коды нарушений на язык lang.
func (d *Directory) Messages(v validation.Violations, lang string) map[string][]string {
	out := make(map[string][]string, len(v))
	for field, codes := range v {
		texts := make([]string, len(codes))
		for i, code := range codes {
			texts[i] = d.catalog.Translate(lang, code, nil)
		}
		out[field] = texts
	}
	return out
}

// Translate переводит ключ на язык lang.
func (d *Directory) Translate(lang, key string, replacements map[string]string) string {
	return d.catalog.Translate(lang, key, replacements)
}

func (d *Directory) validate(ctx context.Context, in entities.EmployeeInput, excludeID int) error {
	v := validation.ValidateForm(in, d.store, excludeID)
	if v.Valid() {
		return nil
	}

	codes := v.Codes()
	d.metrics.ObserveValidationFailure(codes)
	logger.Log(ctx).Debug(ctx, LogValidation, zap.Strings("codes", codes))
	return &ValidationError{Violations: v}
}

func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
