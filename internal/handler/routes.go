package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/andressep95/session-service/internal/metrics"
)

func SetupRoutes(
	app *fiber.App,
	sessionHandler *SessionHandler,
	healthHandler *HealthHandler,
) {
	// Health checks and metrics (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API v1
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.Ensure)
	sessions.Get("/:publicId", sessionHandler.GetDetail)
	sessions.Post("/:publicId/start", sessionHandler.Start)
	sessions.Post("/:publicId/end", sessionHandler.End)
	sessions.Post("/:publicId/tokens", sessionHandler.IssueTokens)
	sessions.Put("/:publicId/notes", sessionHandler.UpsertNote)
	sessions.Get("/:publicId/notes", sessionHandler.GetNote)
	sessions.Post("/:publicId/presence", sessionHandler.Heartbeat)
	sessions.Get("/:publicId/presence", sessionHandler.ListPresence)
}
