package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/middleware"
	"github.com/noah-isme/sasgp-api/internal/page"
	"github.com/noah-isme/sasgp-api/internal/service"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondError maps domain errors onto the failure envelope. Unknown errors
// are logged and reported as a generic 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSolutionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "solution not found")
	case errors.Is(err, service.ErrMissingIdentifier):
		return utils.SendError(c, fiber.StatusBadRequest, "missing identifier")
	case errors.Is(err, service.ErrInvalidRating):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid rating", err.Error())
	case errors.Is(err, service.ErrInvalidPayload):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload", err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload", validationErrors.Error())
	case errors.Is(err, page.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid input", userMessage(err))
	case errors.Is(err, page.ErrSessionMismatch):
		return utils.SendError(c, fiber.StatusConflict, "session does not match solution")
	default:
		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func userMessage(err error) string {
	message := err.Error()
	prefix := page.ErrInvalidInput.Error() + ": "
	return strings.TrimPrefix(message, prefix)
}

func parseBody(c *fiber.Ctx, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body", err.Error())
	}
	return nil
}
