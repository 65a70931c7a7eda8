// Package listing содержит HTTP-обработчики серверной модели списка сотрудников.
package listing

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"employeedir/internal/directory/app"
	"employeedir/internal/directory/app/dto"
	"employeedir/internal/directory/i18n"
	"employeedir/pkg/logger"
)

const (
	LogHandlerGetListing    = "handling get listing request"
	LogHandlerUpdateListing = "handling update listing request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnknownView        = "unknown view mode"
)

// Model модель списка, которая сама следит за хранилищем.
type Model interface {
	State() app.ListingState
	SetQuery(query string)
	SetPage(page int)
	SetViewMode(mode app.ViewMode)
}

// Handler обработчик HTTP-запросов модели списка.
type Handler struct {
	model   Model
	catalog *i18n.Catalog
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(model Model, catalog *i18n.Catalog) *Handler {
	return &Handler{
		model:   model,
		catalog: catalog,
	}
}

// GetListing возвращает текущую страницу списка.
func (h *Handler) GetListing(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetListing)

	return h.send(ctx)
}

// UpdateListing меняет запрос, страницу или режим отображения.
// Новый запрос возвращает список на первую страницу, если страница не указана явно.
func (h *Handler) UpdateListing(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateListing"))
	log.Debug(requestCtx, LogHandlerUpdateListing)

	var req dto.ListingRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if req.View != nil {
		mode := app.ViewMode(*req.View)
		if !mode.Valid() {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgUnknownView)
		}
		h.model.SetViewMode(mode)
	}
	if req.Query != nil {
		h.model.SetQuery(*req.Query)
	}
	if req.Page != nil {
		h.model.SetPage(*req.Page)
	}

	return h.send(ctx)
}

func (h *Handler) send(ctx fiber.Ctx) error {
	if err := ctx.JSON(dto.NewListingResponse(h.model.State(), h.catalog)); err != nil {
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
