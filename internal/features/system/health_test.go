package system

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error { return nil }

func newHealthApp(checks map[string]Pinger) *fiber.App {
	app := fiber.New()
	NewHealthApi(&HealthController{checks: checks}).Setup(app)
	return app
}

func TestHealthAllUp(t *testing.T) {
	app := newHealthApp(map[string]Pinger{"mongodb": pingFunc(ok), "redis": pingFunc(ok)})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthReportsFailingDependency(t *testing.T) {
	app := newHealthApp(map[string]Pinger{
		"mongodb":  pingFunc(ok),
		"postgres": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]interface{}{"mongodb": "ok", "postgres": "connection refused"}, body["checks"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newHealthApp(map[string]Pinger{})

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "go_goroutines")
}
