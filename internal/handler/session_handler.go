package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/metrics"
	"github.com/andressep95/session-service/internal/service"
	"github.com/andressep95/session-service/pkg/presence"
	"github.com/andressep95/session-service/pkg/validator"
)

type SessionHandler struct {
	sessions  *service.SessionService
	tokens    *service.TokenService
	presence  *presence.Tracker
	validator *validator.Validator
}

func NewSessionHandler(
	sessions *service.SessionService,
	tokens *service.TokenService,
	presenceTracker *presence.Tracker,
	validator *validator.Validator,
) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		tokens:    tokens,
		presence:  presenceTracker,
		validator: validator,
	}
}

type ensureRequest struct {
	ReservationID int64 `json:"reservation_id" validate:"required,gt=0"`
}

type issueTokensRequest struct {
	SubjectID string `json:"subject_id" validate:"required,min=1"`
	Role      string `json:"role" validate:"omitempty,oneof=host audience"`
}

type noteRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"max=20000"`
}

type presenceRequest struct {
	SubjectID string `json:"subject_id" validate:"required,min=1"`
	Role      string `json:"role" validate:"omitempty,oneof=host audience"`
}

// Ensure returns the session for a reservation, creating it if absent
// POST /api/v1/sessions
func (h *SessionHandler) Ensure(c *fiber.Ctx) error {
	var req ensureRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_BAD_REQUEST", "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_VALIDATION", err.Error())
	}

	session, err := h.sessions.Ensure(c.Context(), req.ReservationID)
	if err != nil {
		metrics.SessionsEnsured.WithLabelValues("rejected").Inc()
		return respondServiceError(c, err)
	}
	metrics.SessionsEnsured.WithLabelValues("ok").Inc()

	return respondOK(c, fiber.Map{
		"public_id": session.PublicID,
		"channel":   session.Channel,
		"status":    session.Status,
	})
}

// Start transitions a session to LIVE
// POST /api/v1/sessions/:publicId/start
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	session, err := h.sessions.Start(c.Context(), c.Params("publicId"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStateTransition) {
			metrics.TransitionConflicts.Inc()
		}
		return respondServiceError(c, err)
	}
	metrics.SessionTransitions.WithLabelValues(string(domain.SessionStatusLive)).Inc()

	return respondOK(c, fiber.Map{
		"public_id":  session.PublicID,
		"status":     session.Status,
		"started_at": session.StartedAt,
	})
}

// End transitions a session to ENDED
// POST /api/v1/sessions/:publicId/end
func (h *SessionHandler) End(c *fiber.Ctx) error {
	session, err := h.sessions.End(c.Context(), c.Params("publicId"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStateTransition) {
			metrics.TransitionConflicts.Inc()
		}
		return respondServiceError(c, err)
	}
	metrics.SessionTransitions.WithLabelValues(string(domain.SessionStatusEnded)).Inc()

	return respondOK(c, fiber.Map{
		"public_id": session.PublicID,
		"status":    session.Status,
		"ended_at":  session.EndedAt,
	})
}

// GetDetail returns a session with its reservation summary
// GET /api/v1/sessions/:publicId
func (h *SessionHandler) GetDetail(c *fiber.Ctx) error {
	detail, err := h.sessions.GetDetail(c.Context(), c.Params("publicId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, detail)
}

// IssueTokens mints transport credentials for a session participant
// POST /api/v1/sessions/:publicId/tokens
func (h *SessionHandler) IssueTokens(c *fiber.Ctx) error {
	var req issueTokensRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_BAD_REQUEST", "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_VALIDATION", err.Error())
	}

	grant, err := h.tokens.IssueTokens(c.Context(), c.Params("publicId"), req.SubjectID, domain.CallRole(req.Role))
	if err != nil {
		return respondServiceError(c, err)
	}
	metrics.TokensIssued.WithLabelValues(string(grant.Role)).Inc()

	return respondOK(c, grant)
}

// UpsertNote creates or replaces a user's private note on a session
// PUT /api/v1/sessions/:publicId/notes
func (h *SessionHandler) UpsertNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_BAD_REQUEST", "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_VALIDATION", err.Error())
	}

	if err := h.sessions.UpsertNote(c.Context(), c.Params("publicId"), req.UserID, req.Content); err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, fiber.Map{"ok": true})
}

// GetNote returns a user's note on a session, empty if none exists
// GET /api/v1/sessions/:publicId/notes?user_id=
func (h *SessionHandler) GetNote(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id"))
	if userID <= 0 {
		return respondError(c, fiber.StatusBadRequest, "E_VALIDATION", "user_id must be greater than 0")
	}

	content, err := h.sessions.GetNote(c.Context(), c.Params("publicId"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, fiber.Map{"content": content})
}

// Heartbeat marks a participant present in the session's waiting room
// POST /api/v1/sessions/:publicId/presence
func (h *SessionHandler) Heartbeat(c *fiber.Ctx) error {
	var req presenceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_BAD_REQUEST", "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E_VALIDATION", err.Error())
	}

	session, err := h.sessions.Get(c.Context(), c.Params("publicId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	role := req.Role
	if role == "" {
		role = string(domain.CallRoleAudience)
	}
	if err := h.presence.Heartbeat(c.Context(), session.Channel, req.SubjectID, role); err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, fiber.Map{"ok": true})
}

// ListPresence lists participants currently present on a session's channel
// GET /api/v1/sessions/:publicId/presence
func (h *SessionHandler) ListPresence(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Context(), c.Params("publicId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	present, err := h.presence.List(c.Context(), session.Channel)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, fiber.Map{
		"participants": present,
		"count":        len(present),
	})
}
