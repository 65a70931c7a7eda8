package app

import (
	"sync"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/domain/pagination"
	"employeedir/internal/directory/domain/sanitize"
	"employeedir/internal/directory/store"
)

// ViewMode режим отображения списка.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewGrid  ViewMode = "grid"
)

// PerPage возвращает размер страницы для режима.
func (m ViewMode) PerPage() int {
	if m == ViewGrid {
		return 4
	}
	return 10
}

// Valid сообщает, известен ли режим.
func (m ViewMode) Valid() bool {
	return m == ViewTable || m == ViewGrid
}

// ListingState снимок состояния списка.
type ListingState struct {
	Query    string                             `json:"query"`
	Mode     ViewMode                           `json:"mode"`
	Language string                             `json:"language"`
	Page     pagination.Page[entities.Employee] `json:"page"`
	Pages    []int                              `json:"pages"`
	Revision uint64                             `json:"revision"`
}

// Listing модель представления списка сотрудников. Пересчитывает
// текущую страницу при изменении коллекции, языка, запроса или режима.
type Listing struct {
	store *store.Store

	mu       sync.Mutex
	query    string
	page     int
	mode     ViewMode
	language string
	current  pagination.Page[entities.Employee]
	revision uint64
	onChange func(ListingState)

	cancelEmployees func()
	cancelLanguage  func()
}

// NewListing подписывает модель на хранилище. onChange может быть nil.
// Close обязателен для отписки.
func NewListing(s *store.Store, onChange func(ListingState)) *Listing {
	l := &Listing{
		store:    s,
		page:     1,
		mode:     ViewTable,
		language: s.Language(),
		onChange: onChange,
	}

	l.mu.Lock()
	l.recompute()
	l.mu.Unlock()

	l.cancelEmployees = s.Subscribe(func(store.EmployeesChanged) {
		l.update(func() {})
	})
	l.cancelLanguage = s.SubscribeLanguage(func(e store.LanguageChanged) {
		l.update(func() { l.language = e.Language })
	})
	return l
}

// SetQuery задает поисковый запрос и возвращает на первую страницу.
func (l *Listing) SetQuery(query string) {
	l.update(func() {
		l.query = sanitize.Text(query)
		l.page = 1
	})
}

// SetPage переходит на страницу. Номер меньше 1 приводится к 1.
func (l *Listing) SetPage(page int) {
	l.update(func() {
		l.page = max(page, 1)
	})
}

// SetViewMode переключает режим. Неизвестный режим игнорируется.
func (l *Listing) SetViewMode(mode ViewMode) {
	if !mode.Valid() {
		return
	}
	l.update(func() { l.mode = mode })
}

// State возвращает текущее состояние.
func (l *Listing) State() ListingState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state()
}

// Close отписывает модель от хранилища.
func (l *Listing) Close() {
	l.cancelEmployees()
	l.cancelLanguage()
}

func (l *Listing) update(mutate func()) {
	l.mu.Lock()
	mutate()
	l.recompute()
	state := l.state()
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

func (l *Listing) recompute() {
	var items []entities.Employee
	if l.query == "" {
		items = l.store.Employees()
	} else {
		items = l.store.Search(l.query)
	}
	l.current = pagination.Paginate(items, l.page, l.mode.PerPage())
	l.revision++
}

func (l *Listing) state() ListingState {
	var pages []int
	if l.current.TotalPages > 1 {
		pages = pagination.VisiblePages(l.current.CurrentPage, l.current.TotalPages)
	}
	return ListingState{
		Query:    l.query,
		Mode:     l.mode,
		Language: l.language,
		Page:     l.current,
		Pages:    pages,
		Revision: l.revision,
	}
}
