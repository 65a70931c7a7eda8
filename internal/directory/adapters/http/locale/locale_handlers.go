// Package locale содержит HTTP-обработчики языка интерфейса и справочных значений.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"employeedir/internal/directory/app"
	"employeedir/internal/directory/app/dto"
	"employeedir/internal/directory/i18n"
	"employeedir/internal/directory/ports/services"
	"employeedir/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerGetLocale  = "handling get locale request"
	LogHandlerSetLocale  = "handling set locale request"
	LogHandlerGetOptions = "handling get options request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnknownLanguage    = "unknown language"

	// QueryLanguage параметр запроса, переопределяющий язык ответа.
	QueryLanguage = "lang"
)

// RequestLanguage выбирает язык ответа: параметр lang, если он известен,
// иначе активный язык сервиса.
func RequestLanguage(ctx fiber.Ctx, svc services.DirectoryService, catalog *i18n.Catalog) string {
	if code := ctx.Query(QueryLanguage); code != "" {
		if lang, ok := catalog.Normalize(code); ok {
			return lang
		}
	}
	return svc.Language()
}

// Handler обработчик HTTP-запросов языка интерфейса.
type Handler struct {
	svc     services.DirectoryService
	catalog *i18n.Catalog
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(svc services.DirectoryService, catalog *i18n.Catalog) *Handler {
	return &Handler{
		svc:     svc,
		catalog: catalog,
	}
}

// GetLocale возвращает активный и доступные языки.
func (h *Handler) GetLocale(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetLocale)

	if err := ctx.JSON(dto.LocaleResponse{
		Language:  h.svc.Language(),
		Available: h.catalog.Languages(),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SetLocale меняет активный язык. Без явного кода язык выбирается по Accept-Language.
func (h *Handler) SetLocale(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SetLocale"))
	log.Debug(requestCtx, LogHandlerSetLocale)

	var req dto.LocaleRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().Body(&req); err != nil {
			log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
		}
	}

	code := strings.TrimSpace(req.Language)
	if code == "" {
		code = h.catalog.Detect(ctx.Get(fiber.HeaderAcceptLanguage))
	}

	lang, err := h.svc.ChangeLanguage(requestCtx, code)
	if err != nil {
		if errors.Is(err, app.ErrUnknownLanguage) {
			log.Debug(requestCtx, ErrMsgUnknownLanguage, zap.String("language", code))
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgUnknownLanguage)
		}
		log.Error(requestCtx, "failed to change language", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := ctx.JSON(dto.LocaleResponse{
		Language:  lang,
		Available: h.catalog.Languages(),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetOptions возвращает должности и отделы с подписями на языке запроса.
func (h *Handler) GetOptions(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetOptions)

	lang := RequestLanguage(ctx, h.svc, h.catalog)

	resp := dto.OptionsResponse{
		Positions:   make([]dto.Option, len(i18n.Positions)),
		Departments: make([]dto.Option, len(i18n.Departments)),
	}
	for i, p := range i18n.Positions {
		resp.Positions[i] = dto.Option{Value: p, Label: h.catalog.Position(lang, p)}
	}
	for i, d := range i18n.Departments {
		resp.Departments[i] = dto.Option{Value: d, Label: h.catalog.Department(lang, d)}
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
