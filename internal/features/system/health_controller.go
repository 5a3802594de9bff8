package system

import (
	"context"
	"sort"
	"time"

	"agency-forms/internal/database"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 3 * time.Second

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	checks map[string]Pinger
}

func NewHealthController(mongo *database.MongodbDB, pg *database.PostgresDB, rdb *database.RedisClient) *HealthController {
	return &HealthController{checks: map[string]Pinger{
		"mongodb":  mongo,
		"postgres": pg,
		"redis":    rdb,
	}}
}

// Health godoc
// @Summary Service health
// @Description Pings MongoDB, PostgreSQL and Redis
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	results := fiber.Map{}
	for _, name := range names {
		if err := c.checks[name].Ping(pingCtx); err != nil {
			status = "degraded"
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return ctx.Status(code).JSON(fiber.Map{"status": status, "checks": results})
}
