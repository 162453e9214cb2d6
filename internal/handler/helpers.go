package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/session-service/internal/service"
)

const (
	codeReservationNotFound = "E_RES_NOT_FOUND"
	codeSessionNotFound     = "E_SES_NOT_FOUND"
	codeSessionState        = "E_SES_STATE"
	codeInternal            = "E_INTERNAL"
)

func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps domain errors to machine-readable codes. Invalid
// state transitions carry the session's actual state so clients can
// resynchronize their UI.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrReservationInvalid):
		return respondError(c, fiber.StatusNotFound, codeReservationNotFound, "Reservation invalid")
	case errors.Is(err, service.ErrSessionNotFound):
		return respondError(c, fiber.StatusNotFound, codeSessionNotFound, "Session not found")
	case errors.Is(err, service.ErrInvalidStateTransition):
		var transitionErr *service.TransitionError
		if errors.As(err, &transitionErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":           codeSessionState,
					"message":        transitionErr.Error(),
					"current_status": transitionErr.Current,
				},
			})
		}
		return respondError(c, fiber.StatusConflict, codeSessionState, err.Error())
	default:
		log.Printf("[HANDLER] unexpected error: %v", err)
		return respondError(c, fiber.StatusInternalServerError, codeInternal, "Internal server error")
	}
}
