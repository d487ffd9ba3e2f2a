package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sasgp-api/internal/middleware"
	"github.com/noah-isme/sasgp-api/internal/observability"
)

func TestCorrelationIDReusesIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.CorrelationHeader, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get(middleware.CorrelationHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Len(t, resp.Header.Get(middleware.CorrelationHeader), 36)
}

func TestRateLimitRejectsAfterMax(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RateLimit("test", 2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestObservabilityCountsRequestsAndSkipsMetricsPath(t *testing.T) {
	app := fiber.New()
	middleware.Register(app, middleware.Config{MetricsPath: "/metrics"})
	app.Get("/probe/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	before := testutil.ToFloat64(observability.HTTPErrors().WithLabelValues(http.MethodGet, "/probe/:id", "418"))
	skippedBefore := testutil.ToFloat64(observability.HTTPRequests().WithLabelValues(http.MethodGet, "/metrics", "200"))

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/probe/7", nil), -1)
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)

	require.Equal(t, before+1, testutil.ToFloat64(observability.HTTPErrors().WithLabelValues(http.MethodGet, "/probe/:id", "418")))
	require.Equal(t, skippedBefore, testutil.ToFloat64(observability.HTTPRequests().WithLabelValues(http.MethodGet, "/metrics", "200")))
}
