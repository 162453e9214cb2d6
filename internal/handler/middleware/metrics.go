package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/session-service/internal/metrics"
)

// MetricsMiddleware records request latency per route
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		metrics.RequestDuration.WithLabelValues(
			c.Method(),
			route,
			strconv.Itoa(c.Response().StatusCode()),
		).Observe(time.Since(start).Seconds())

		return err
	}
}
