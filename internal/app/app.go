// Package app assembles the SASGP HTTP application from its backing services.
package app

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/config"
	"github.com/noah-isme/sasgp-api/internal/database"
	"github.com/noah-isme/sasgp-api/internal/handler"
	"github.com/noah-isme/sasgp-api/internal/middleware"
	"github.com/noah-isme/sasgp-api/internal/models"
	"github.com/noah-isme/sasgp-api/internal/repository"
	"github.com/noah-isme/sasgp-api/internal/router"
	"github.com/noah-isme/sasgp-api/internal/service"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// Backends are the external connections the application runs on. Cache and
// Broker are optional.
type Backends struct {
	DB     *gorm.DB
	Cache  *redis.Client
	Broker *nats.Conn
}

// New builds the fiber application with every route registered.
func New(cfg config.Config, backends Backends, logger zerolog.Logger) *fiber.App {
	validate := validator.New(validator.WithRequiredStructEnabled())
	events := service.NewEventPublisher(backends.Broker, cfg.EventSubject, logger)

	db := backends.DB
	solutionService := service.NewSolutionService(repository.NewSolutionRepository(db), backends.Cache, cfg.SolutionCacheTTL, validate, events, logger)
	statusService := service.NewStatusService(repository.NewStatusRepository(db), validate, events, logger)
	recordService := service.NewRecordService(service.RecordRepositories{
		FormAnswers: repository.NewRecordRepository[models.FormAnswers](db, models.CollectionFormAnswers),
		Resources:   repository.NewRecordRepository[models.Resources](db, models.CollectionResources),
		Scores:      repository.NewRecordRepository[models.Score](db, models.CollectionScores),
		Canvases:    repository.NewRecordRepository[models.CanvasData](db, models.CollectionCanvases),
		Evaluations: repository.NewRecordRepository[models.Evaluation](db, models.CollectionEvaluations),
		Reports:     repository.NewReportRepository(db),
	}, validate, events, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: errorHandler(logger),
	})

	middleware.Register(app, middleware.Config{
		Logger:          &logger,
		MetricsPath:     router.MetricsPath,
		AccessLog:       !cfg.IsProduction() && cfg.AppEnv != "test",
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	router.Register(app, cfg, router.Dependencies{
		SolutionHandler: handler.NewSolutionHandler(solutionService, statusService, logger),
		RecordHandler:   handler.NewRecordHandler(recordService, logger),
		PageHandler:     handler.NewPageHandler(solutionService, recordService, statusService, router.APIPrefix, logger),
		StorePinger:     database.Pinger(db),
	})

	return app
}

// errorHandler answers errors that escaped the handlers. Fiber errors keep
// their status and message; anything else is logged and reported as a
// generic 500.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.SendError(c, fiberErr.Code, fiberErr.Message)
		}

		logger.Error().
			Err(err).
			Str("correlation_id", middleware.GetCorrelationID(c)).
			Str("path", c.Path()).
			Msg("unhandled error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
