package repository

import (
	"context"
	"time"

	"github.com/andressep95/session-service/internal/domain"
)

type SessionRepository interface {
	// Create inserts a new session row. Returns ErrDuplicateSession when a
	// session already exists for the same reservation.
	Create(ctx context.Context, session *domain.Session) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.Session, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Session, error)
	// MarkStarted atomically moves a SCHEDULED session to LIVE and stamps
	// started_at. Returns ErrNotFound when no row is in the expected state.
	MarkStarted(ctx context.Context, publicID string, at time.Time) (*domain.Session, error)
	// MarkEnded atomically moves a LIVE session to ENDED and stamps ended_at.
	// Returns ErrNotFound when no row is in the expected state.
	MarkEnded(ctx context.Context, publicID string, at time.Time) (*domain.Session, error)
}
