// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employeedir/internal/directory/adapters/http/employees"
	"employeedir/internal/directory/adapters/http/listing"
	"employeedir/internal/directory/adapters/http/locale"
	"employeedir/internal/directory/adapters/http/middleware"
	"employeedir/internal/directory/config"
	"employeedir/internal/directory/i18n"
	"employeedir/internal/directory/metrics"
	"employeedir/internal/directory/ports/services"
)

// Dependencies зависимости маршрутизатора.
type Dependencies struct {
	Service    services.DirectoryService
	Listing    listing.Model
	Catalog    *i18n.Catalog
	Pagination config.PaginationConfig
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	employeesHandler := employees.NewHandler(deps.Service, deps.Catalog, deps.Pagination)
	localeHandler := locale.NewHandler(deps.Service, deps.Catalog)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewMetricsMiddleware(deps.Metrics))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Get("/", employeesHandler.ListEmployees)
	employeeRoutes.Post("/", employeesHandler.CreateEmployee)
	employeeRoutes.Get("/:id", employeesHandler.GetEmployee)
	employeeRoutes.Put("/:id", employeesHandler.UpdateEmployee)
	employeeRoutes.Delete("/:id", employeesHandler.DeleteEmployee)

	apiV1.Get("/locale", localeHandler.GetLocale)
	apiV1.Put("/locale", localeHandler.SetLocale)
	apiV1.Get("/options", localeHandler.GetOptions)

	if deps.Listing != nil {
		listingHandler := listing.NewHandler(deps.Listing, deps.Catalog)
		apiV1.Get("/listing", listingHandler.GetListing)
		apiV1.Patch("/listing", listingHandler.UpdateListing)
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
