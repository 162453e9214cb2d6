package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"service": "session-service",
	})
}

// Ready returns readiness status with dependency checks
// GET /ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{
		"database": "ok",
		"cache":    "ok",
	}
	status := fiber.StatusOK

	if err := h.db.PingContext(c.Context()); err != nil {
		checks["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if err := h.redis.Ping(c.Context()).Err(); err != nil {
		checks["cache"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": statusWord(status),
		"checks": checks,
	})
}

func statusWord(status int) string {
	if status == fiber.StatusOK {
		return "ready"
	}
	return "degraded"
}
