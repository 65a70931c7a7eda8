// Package store владеет коллекцией сотрудников, проверяет ее инварианты
// и синхронно рассылает снимки всем подписчикам после каждой мутации.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/metrics"
	"employeedir/pkg/logger"
)

// Ошибки хранилища.
var (
	ErrNotFound          = errors.New("employee not found")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrInvalidCollection = errors.New("invalid employee collection")
)

// Операции для логов и метрик.
const (
	OpAdd          = "add"
	OpUpdate       = "update"
	OpDelete       = "delete"
	OpSetEmployees = "set_employees"

	LogMutation        = "employee collection changed"
	LogLanguageChanged = "language changed"
)

// EmployeesChanged событие изменения коллекции с полным итоговым снимком.
type EmployeesChanged struct {
	Employees []entities.Employee `json:"employees"`
}

// LanguageChanged событие смены языка.
type LanguageChanged struct {
	Language string `json:"language"`
}

// Persister принимает снимок коллекции после каждой мутации. Не должен блокироваться.
type Persister interface {
	Persist(ctx context.Context, employees []entities.Employee)
}

// Translator источник переводов для T и проверки кода языка.
type Translator interface {
	Has(code string) bool
	Fallback() string
	Translate(lang, key string, replacements map[string]string) string
}

// Option настраивает Store.
type Option func(*Store)

// WithPersister подключает сохранение снимков.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithLanguage задает начальный язык. Неизвестный код игнорируется.
func WithLanguage(code string) Option {
	return func(s *Store) {
		if s.translator.Has(code) {
			s.language = code
		}
	}
}

// Store реактивное хранилище сотрудников.
//
// Мутации и рассылка уведомлений выполняются под writeMu, поэтому
// подписчик может читать хранилище, но не должен синхронно вызывать мутаторы.
type Store struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	employees []entities.Employee
	language  string

	employeeObservers observers[EmployeesChanged]
	languageObservers observers[LanguageChanged]

	translator Translator
	persister  Persister
	metrics    *metrics.Metrics
}

// New создает пустое хранилище с языком по умолчанию из translator.
func New(translator Translator, opts ...Option) *Store {
	s := &Store{
		employees:  []entities.Employee{},
		language:   translator.Fallback(),
		translator: translator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add назначает следующий идентификатор, добавляет запись в конец и уведомляет подписчиков.
func (s *Store) Add(ctx context.Context, in entities.EmployeeInput) entities.Employee {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	created := in.ToEmployee(nextID(s.employees))
	next := append(slices.Clone(s.employees), created)
	s.employees = next
	s.mu.Unlock()

	s.publish(ctx, OpAdd, next, zap.Int("id", created.ID))
	return created
}

// Update заменяет все поля записи id, кроме идентификатора.
func (s *Store) Update(ctx context.Context, id int, in entities.EmployeeInput) (entities.Employee, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := indexOf(s.employees, id)
	if idx < 0 {
		s.mu.Unlock()
		return entities.Employee{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	updated := in.ToEmployee(id)
	next := slices.Clone(s.employees)
	next[idx] = updated
	s.employees = next
	s.mu.Unlock()

	s.publish(ctx, OpUpdate, next, zap.Int("id", id))
	return updated, nil
}

// Delete удаляет запись id и возвращает ее.
func (s *Store) Delete(ctx context.Context, id int) (entities.Employee, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := indexOf(s.employees, id)
	if idx < 0 {
		s.mu.Unlock()
		return entities.Employee{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	removed := s.employees[idx]
	next := slices.Delete(slices.Clone(s.employees), idx, idx+1)
	s.employees = next
	s.mu.Unlock()

	s.publish(ctx, OpDelete, next, zap.Int("id", id))
	return removed, nil
}

// SetEmployees заменяет всю коллекцию. Коллекция с неположительными или
// повторяющимися идентификаторами либо повторяющимися адресами отклоняется.
func (s *Store) SetEmployees(ctx context.Context, employees []entities.Employee) error {
	if err := checkCollection(employees); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := slices.Clone(employees)
	if next == nil {
		next = []entities.Employee{}
	}

	s.mu.Lock()
	s.employees = next
	s.mu.Unlock()

	s.publish(ctx, OpSetEmployees, next)
	return nil
}

// Employees возвращает копию коллекции.
func (s *Store) Employees() []entities.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

// Len возвращает число записей.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

// GetByID возвращает запись по идентификатору.
func (s *Store) GetByID(id int) (entities.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := indexOf(s.employees, id); idx >= 0 {
		return s.employees[idx], true
	}
	return entities.Employee{}, false
}

// Search возвращает записи, у которых имя, фамилия, адрес, отдел или должность
// содержат query без учета регистра. Пустой запрос возвращает всю коллекцию.
func (s *Store) Search(query string) []entities.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return slices.Clone(s.employees)
	}

	fold := cases.Fold()
	needle := fold.String(query)

	result := make([]entities.Employee, 0)
	for _, e := range s.employees {
		for _, field := range [...]string{e.FirstName, e.LastName, e.Email, e.Department, e.Position} {
			if strings.Contains(fold.String(field), needle) {
				result = append(result, e)
				break
			}
		}
	}
	return result
}

// IsEmailUnique сообщает, что ни одна запись, кроме excludeID, не использует адрес.
// excludeID == 0 означает отсутствие исключения.
func (s *Store) IsEmailUnique(email string, excludeID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fold := cases.Fold()
	target := fold.String(email)
	for _, e := range s.employees {
		if e.ID != excludeID && fold.String(e.Email) == target {
			return false
		}
	}
	return true
}

// Subscribe регистрирует подписчика на изменения коллекции.
// Возвращаемая функция отменяет подписку и может вызываться повторно.
func (s *Store) Subscribe(fn func(EmployeesChanged)) (cancel func()) {
	return s.employeeObservers.add(fn)
}

// SubscribeLanguage регистрирует подписчика на смену языка.
func (s *Store) SubscribeLanguage(fn func(LanguageChanged)) (cancel func()) {
	return s.languageObservers.add(fn)
}

// Language возвращает активный язык.
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage меняет активный язык и уведомляет подписчиков.
// Неизвестный код отклоняется без изменений и уведомлений.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	if !s.translator.Has(code) {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.language = code
	s.mu.Unlock()

	logger.Log(ctx).Info(ctx, LogLanguageChanged, zap.String("language", code))

	event := LanguageChanged{Language: code}
	for _, fn := range s.languageObservers.snapshot() {
		fn(event)
	}
	return nil
}

// T переводит ключ на активный язык.
func (s *Store) T(key string, replacements map[string]string) string {
	return s.translator.Translate(s.Language(), key, replacements)
}

// publish вызывается под writeMu с новой коллекцией, которую больше никто не изменяет.
func (s *Store) publish(ctx context.Context, op string, employees []entities.Employee, fields ...zap.Field) {
	logger.Log(ctx).Debug(ctx, LogMutation,
		append(fields, zap.String("operation", op), zap.Int("employees", len(employees)))...)

	s.metrics.ObserveMutation(op, len(employees))

	if s.persister != nil {
		s.persister.Persist(ctx, slices.Clone(employees))
	}

	for _, fn := range s.employeeObservers.snapshot() {
		fn(EmployeesChanged{Employees: slices.Clone(employees)})
	}
}

func nextID(employees []entities.Employee) int {
	maxID := 0
	for _, e := range employees {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

func indexOf(employees []entities.Employee, id int) int {
	return slices.IndexFunc(employees, func(e entities.Employee) bool { return e.ID == id })
}

func checkCollection(employees []entities.Employee) error {
	ids := make(map[int]struct{}, len(employees))
	emails := make(map[string]int, len(employees))
	fold := cases.Fold()

	for _, e := range employees {
		if e.ID <= 0 {
			return fmt.Errorf("%w: non-positive id %d", ErrInvalidCollection, e.ID)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidCollection, e.ID)
		}
		ids[e.ID] = struct{}{}

		if e.Email == "" {
			continue
		}
		email := fold.String(e.Email)
		if other, dup := emails[email]; dup {
			return fmt.Errorf("%w: email %q used by ids %d and %d", ErrInvalidCollection, e.Email, other, e.ID)
		}
		emails[email] = e.ID
	}
	return nil
}
