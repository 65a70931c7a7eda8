// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"employeedir/internal/directory/app"
	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/domain/pagination"
	"employeedir/internal/directory/i18n"
)

// EmployeeRequest тело запроса создания и изменения сотрудника.
type EmployeeRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Position         string `json:"position"`
}

// ToInput переводит запрос в данные формы.
func (r EmployeeRequest) ToInput() entities.EmployeeInput {
	return entities.EmployeeInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		DateOfEmployment: r.DateOfEmployment,
		DateOfBirth:      r.DateOfBirth,
		Phone:            r.Phone,
		Email:            r.Email,
		Department:       r.Department,
		Position:         r.Position,
	}
}

// EmployeeDisplay локализованные значения для отображения.
type EmployeeDisplay struct {
	FullName         string `json:"fullName"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
	Department       string `json:"department"`
	Position         string `json:"position"`
}

// EmployeeResponse сотрудник с локализованным представлением
// и значениями для формы редактирования.
type EmployeeResponse struct {
	entities.Employee
	Display EmployeeDisplay `json:"display"`
	Form    EmployeeRequest `json:"form"`
}

// NewEmployeeResponse формирует ответ на языке lang.
func NewEmployeeResponse(e entities.Employee, catalog *i18n.Catalog, lang string) EmployeeResponse {
	return EmployeeResponse{
		Employee: e,
		Display: EmployeeDisplay{
			FullName:         e.FullName(),
			DateOfEmployment: catalog.FormatDate(lang, e.DateOfEmployment),
			DateOfBirth:      catalog.FormatDate(lang, e.DateOfBirth),
			Department:       catalog.Department(lang, e.Department),
			Position:         catalog.Position(lang, e.Position),
		},
		Form: NewEmployeeForm(e),
	}
}

// NewEmployeeForm заполняет форму редактирования. Даты приводятся к YYYY-MM-DD,
// неразбираемая дата дает пустое поле.
func NewEmployeeForm(e entities.Employee) EmployeeRequest {
	return EmployeeRequest{
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		DateOfEmployment: i18n.FormatDateForInput(e.DateOfEmployment),
		DateOfBirth:      i18n.FormatDateForInput(e.DateOfBirth),
		Phone:            e.Phone,
		Email:            e.Email,
		Department:       e.Department,
		Position:         e.Position,
	}
}

// ListResponse страница списка сотрудников.
type ListResponse struct {
	Items       []EmployeeResponse `json:"items"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	HasNext     bool               `json:"hasNext"`
	HasPrev     bool               `json:"hasPrev"`
	TotalItems  int                `json:"totalItems"`
	Pages       []int              `json:"pages"`
	Query       string             `json:"query"`
	Language    string             `json:"language"`
	Empty       string             `json:"emptyMessage,omitempty"`
}

// NewListResponse формирует ответ для страницы page.
func NewListResponse(page pagination.Page[entities.Employee], query string, catalog *i18n.Catalog, lang string) ListResponse {
	items := make([]EmployeeResponse, len(page.Items))
	for i, e := range page.Items {
		items[i] = NewEmployeeResponse(e, catalog, lang)
	}

	resp := ListResponse{
		Items:       items,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		HasNext:     page.HasNext,
		HasPrev:     page.HasPrev,
		TotalItems:  page.TotalItems,
		Pages:       []int{},
		Query:       query,
		Language:    lang,
	}
	if page.TotalPages > 1 {
		resp.Pages = pagination.VisiblePages(page.CurrentPage, page.TotalPages)
	}
	if page.TotalItems == 0 {
		resp.Empty = catalog.Translate(lang, "noEmployeesFound", nil)
	}
	return resp
}

// MutationResponse результат изменения с уведомлением.
type MutationResponse struct {
	Message  string           `json:"message"`
	Employee EmployeeResponse `json:"employee"`
}

// ValidationErrorResponse ответ на отклоненную форму.
type ValidationErrorResponse struct {
	Error      string              `json:"error"`
	Violations map[string][]string `json:"violations"`
	Messages   map[string][]string `json:"messages"`
}

// ErrorResponse ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListingRequest изменение состояния списка. Отсутствующие поля не меняются.
type ListingRequest struct {
	Query *string `json:"query"`
	Page  *int    `json:"page"`
	View  *string `json:"view"`
}

// ListingResponse текущая страница списка вместе с режимом и номером ревизии.
type ListingResponse struct {
	ListResponse
	View     string `json:"view"`
	PerPage  int    `json:"perPage"`
	Revision uint64 `json:"revision"`
}

// NewListingResponse формирует ответ из состояния списка на его активном языке.
func NewListingResponse(state app.ListingState, catalog *i18n.Catalog) ListingResponse {
	return ListingResponse{
		ListResponse: NewListResponse(state.Page, state.Query, catalog, state.Language),
		View:         string(state.Mode),
		PerPage:      state.Mode.PerPage(),
		Revision:     state.Revision,
	}
}
