package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"employeedir/internal/directory/metrics"
)

// NewMetricsMiddleware считает запросы по шаблону маршрута, а не по фактическому пути.
func NewMetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		m.ObserveHTTP(ctx.Method(), ctx.Route().Path, status, start)
		return err
	}
}
