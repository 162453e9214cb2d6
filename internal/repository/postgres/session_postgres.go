package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/repository"
)

const uniqueViolation = "23505"

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session into the database
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (public_id, reservation_id, channel, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		session.PublicID, session.ReservationID, session.Channel, session.Status,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateSession
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByPublicID retrieves a session by its public identifier
func (r *sessionRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Session, error) {
	query := `
		SELECT id, public_id, reservation_id, channel, status,
			   started_at, ended_at, created_at, updated_at
		FROM sessions
		WHERE public_id = $1`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by public id: %w", err)
	}

	return &session, nil
}

// GetByReservationID retrieves the session bound to a reservation
func (r *sessionRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Session, error) {
	query := `
		SELECT id, public_id, reservation_id, channel, status,
			   started_at, ended_at, created_at, updated_at
		FROM sessions
		WHERE reservation_id = $1`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by reservation id: %w", err)
	}

	return &session, nil
}

// MarkStarted moves a SCHEDULED session to LIVE. The status predicate makes
// the update a compare-and-swap: under concurrent starts exactly one call
// updates the row, the rest observe ErrNotFound.
func (r *sessionRepository) MarkStarted(ctx context.Context, publicID string, at time.Time) (*domain.Session, error) {
	query := `
		UPDATE sessions
		SET status = $1, started_at = $2, updated_at = $2
		WHERE public_id = $3 AND status = $4
		RETURNING id, public_id, reservation_id, channel, status,
				  started_at, ended_at, created_at, updated_at`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query,
		domain.SessionStatusLive, at, publicID, domain.SessionStatusScheduled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark session started: %w", err)
	}

	return &session, nil
}

// MarkEnded moves a LIVE session to ENDED, same compare-and-swap shape as
// MarkStarted.
func (r *sessionRepository) MarkEnded(ctx context.Context, publicID string, at time.Time) (*domain.Session, error) {
	query := `
		UPDATE sessions
		SET status = $1, ended_at = $2, updated_at = $2
		WHERE public_id = $3 AND status = $4
		RETURNING id, public_id, reservation_id, channel, status,
				  started_at, ended_at, created_at, updated_at`

	var session domain.Session
	err := r.db.GetContext(ctx, &session, query,
		domain.SessionStatusEnded, at, publicID, domain.SessionStatusLive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark session ended: %w", err)
	}

	return &session, nil
}
