package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sasgp-api/internal/config"
	"github.com/noah-isme/sasgp-api/internal/handler"
	"github.com/noah-isme/sasgp-api/internal/observability"
)

// Route prefixes.
const (
	APIPrefix   = "/api/v1"
	PagesPrefix = "/pages"
	MetricsPath = APIPrefix + "/metrics"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SolutionHandler *handler.SolutionHandler
	RecordHandler   *handler.RecordHandler
	PageHandler     *handler.PageHandler
	StorePinger     handler.StorePinger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group(APIPrefix, func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.StorePinger))
	api.Get("/metrics", observability.MetricsHandler())

	solutions := api.Group("/solutions")
	if deps.RecordHandler != nil {
		// Record routes are more specific than /:docId and register first.
		deps.RecordHandler.Register(solutions)
		deps.RecordHandler.RegisterReports(api.Group("/reports"))
	}
	if deps.SolutionHandler != nil {
		deps.SolutionHandler.Register(solutions)
	}

	if deps.PageHandler != nil {
		deps.PageHandler.Register(app.Group(PagesPrefix))
	}
}
