// Package employees содержит HTTP-обработчики для управления сотрудниками.
package employees

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"employeedir/internal/directory/adapters/http/locale"
	"employeedir/internal/directory/app"
	"employeedir/internal/directory/app/dto"
	"employeedir/internal/directory/config"
	"employeedir/internal/directory/i18n"
	"employeedir/internal/directory/ports/services"
	"employeedir/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateEmployee = "handling create employee request"
	LogHandlerGetEmployee    = "handling get employee request"
	LogHandlerListEmployees  = "handling list employees request"
	LogHandlerUpdateEmployee = "handling update employee request"
	LogHandlerDeleteEmployee = "handling delete employee request"

	ErrMsgInvalidEmployeeID  = "invalid employee id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgValidation         = "validation failed"
	ErrMsgInternal           = "Internal server error"
)

// Параметры запроса списка.
const (
	ParamID      = "id"
	QuerySearch  = "q"
	QueryPage    = "page"
	QueryPerPage = "per_page"
	QueryView    = "view"
)

// Handler обработчик HTTP-запросов для работы с сотрудниками.
type Handler struct {
	svc     services.DirectoryService
	catalog *i18n.Catalog
	pages   config.PaginationConfig
}

// NewHandler создает новый экземпляр обработчика сотрудников.
func NewHandler(svc services.DirectoryService, catalog *i18n.Catalog, pages config.PaginationConfig) *Handler {
	return &Handler{
		svc:     svc,
		catalog: catalog,
		pages:   pages,
	}
}

// CreateEmployee обрабатывает запрос на добавление сотрудника.
func (h *Handler) CreateEmployee(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateEmployee"))
	log.Debug(requestCtx, LogHandlerCreateEmployee)

	var req dto.EmployeeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	lang := locale.RequestLanguage(ctx, h.svc, h.catalog)

	employee, err := h.svc.Create(requestCtx, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to create employee", zap.Error(err))
		return h.handleError(ctx, lang, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.MutationResponse{
		Message:  h.svc.Translate(lang, "employeeAdded", nil),
		Employee: dto.NewEmployeeResponse(employee, h.catalog, lang),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetEmployee обрабатывает запрос на получение сотрудника по ID.
func (h *Handler) GetEmployee(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetEmployee"))
	log.Debug(requestCtx, LogHandlerGetEmployee)

	id, ok := parseID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidEmployeeID)
	}

	lang := locale.RequestLanguage(ctx, h.svc, h.catalog)

	employee, err := h.svc.Get(id)
	if err != nil {
		return h.handleError(ctx, lang, err)
	}

	if err := ctx.JSON(dto.NewEmployeeResponse(employee, h.catalog, lang)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListEmployees обрабатывает запрос списка с поиском и пагинацией.
func (h *Handler) ListEmployees(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListEmployees"))
	log.Debug(requestCtx, LogHandlerListEmployees)

	page, err := strconv.Atoi(ctx.Query(QueryPage, "1"))
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	perPage := h.pages.DefaultPerPage
	if mode := app.ViewMode(ctx.Query(QueryView)); mode.Valid() {
		perPage = mode.PerPage()
	}
	if raw := ctx.Query(QueryPerPage); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil {
			log.Debug(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
		}
	}
	perPage = h.pages.Clamp(perPage)

	query := ctx.Query(QuerySearch)
	lang := locale.RequestLanguage(ctx, h.svc, h.catalog)

	result := h.svc.List(query, page, perPage)

	if err := ctx.JSON(dto.NewListResponse(result, query, h.catalog, lang)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateEmployee обрабатывает запрос на изменение сотрудника.
func (h *Handler) UpdateEmployee(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateEmployee"))
	log.Debug(requestCtx, LogHandlerUpdateEmployee)

	id, ok := parseID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidEmployeeID)
	}

	var req dto.EmployeeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	lang := locale.RequestLanguage(ctx, h.svc, h.catalog)

	employee, err := h.svc.Update(requestCtx, id, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, "failed to update employee", zap.Error(err))
		return h.handleError(ctx, lang, err)
	}

	if err := ctx.JSON(dto.MutationResponse{
		Message:  h.svc.Translate(lang, "employeeUpdated", nil),
		Employee: dto.NewEmployeeResponse(employee, h.catalog, lang),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteEmployee обрабатывает запрос на удаление сотрудника.
func (h *Handler) DeleteEmployee(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteEmployee"))
	log.Debug(requestCtx, LogHandlerDeleteEmployee)

	id, ok := parseID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidEmployeeID)
	}

	lang := locale.RequestLanguage(ctx, h.svc, h.catalog)

	employee, err := h.svc.Delete(requestCtx, id)
	if err != nil {
		return h.handleError(ctx, lang, err)
	}

	if err := ctx.JSON(dto.MutationResponse{
		Message:  h.svc.Translate(lang, "employeeDeleted", nil),
		Employee: dto.NewEmployeeResponse(employee, h.catalog, lang),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError переводит ошибки сценариев в HTTP-статусы.
func (h *Handler) handleError(ctx fiber.Ctx, lang string, err error) error {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		if err := ctx.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Error:      ErrMsgValidation,
			Violations: validationErr.Violations,
			Messages:   h.svc.Messages(validationErr.Violations, lang),
		}); err != nil {
			return fmt.Errorf("error sending 422 response: %w", err)
		}
		return nil
	case errors.Is(err, app.ErrNotFound):
		return sendError(ctx, fiber.StatusNotFound, h.svc.Translate(lang, "employeeNotFound", nil))
	}

	requestCtx := ctx.Context()
	logger.Log(requestCtx).Error(requestCtx, ErrMsgInternal, zap.Error(err))
	return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
}

func parseID(ctx fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(ctx.Params(ParamID))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
