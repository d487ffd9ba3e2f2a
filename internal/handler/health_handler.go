package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sasgp-api/internal/config"
	"github.com/noah-isme/sasgp-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Store       string    `json:"store"`
}

// StorePinger checks connectivity with the backing store.
type StorePinger func(ctx context.Context) error

// HealthCheck reports service health. A nil pinger skips the store check.
func HealthCheck(cfg config.Config, ping StorePinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Store:       "unchecked",
		}

		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()

			if err := ping(ctx); err != nil {
				payload.Status = "degraded"
				payload.Store = "unreachable"
				return utils.SendSuccessWithStatus(c, fiber.StatusServiceUnavailable, "store unreachable", payload)
			}
			payload.Store = "ok"
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
