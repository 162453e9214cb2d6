package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/repository"
	"github.com/andressep95/session-service/pkg/clock"
	"github.com/andressep95/session-service/pkg/ids"
)

// Custom errors
var (
	ErrReservationInvalid     = errors.New("reservation does not exist or is canceled")
	ErrSessionNotFound        = errors.New("session not found")
	ErrInvalidStateTransition = errors.New("invalid session state transition")
)

// TransitionError reports a rejected lifecycle transition along with the
// session's actual state, so callers can resynchronize.
type TransitionError struct {
	Current   domain.SessionStatus
	Requested domain.SessionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition to %s: session is %s", e.Requested, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// SessionService owns session creation and lifecycle transitions. It is the
// sole writer of session status and timestamps.
type SessionService struct {
	sessionRepo     repository.SessionRepository
	reservationRepo repository.ReservationRepository
	noteRepo        repository.NoteRepository
	ids             ids.Generator
	clock           clock.Clock
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	reservationRepo repository.ReservationRepository,
	noteRepo repository.NoteRepository,
	idGen ids.Generator,
	clk clock.Clock,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		reservationRepo: reservationRepo,
		noteRepo:        noteRepo,
		ids:             idGen,
		clock:           clk,
	}
}

// Ensure returns the session bound to a reservation, creating it if absent.
// Idempotent: repeated calls for the same reservation return the same session
// and never create a second row.
func (s *SessionService) Ensure(ctx context.Context, reservationID int64) (*domain.Session, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationInvalid
		}
		return nil, err
	}
	if reservation.Status == domain.ReservationStatusCanceled {
		return nil, ErrReservationInvalid
	}

	existing, err := s.sessionRepo.GetByReservationID(ctx, reservationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	session := &domain.Session{
		PublicID:      s.ids.NewID(),
		ReservationID: reservationID,
		Channel:       s.ids.NewID(),
		Status:        domain.SessionStatusScheduled,
	}

	err = s.sessionRepo.Create(ctx, session)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, repository.ErrDuplicateSession) {
		// Lost the creation race; the winner's row is the session.
		return s.sessionRepo.GetByReservationID(ctx, reservationID)
	}
	return nil, err
}

// Start transitions a session from SCHEDULED to LIVE
func (s *SessionService) Start(ctx context.Context, publicID string) (*domain.Session, error) {
	session, err := s.sessionRepo.MarkStarted(ctx, publicID, s.clock.Now())
	if err == nil {
		return session, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.transitionFailure(ctx, publicID, domain.SessionStatusLive)
	}
	return nil, err
}

// End transitions a session from LIVE to ENDED
func (s *SessionService) End(ctx context.Context, publicID string) (*domain.Session, error) {
	session, err := s.sessionRepo.MarkEnded(ctx, publicID, s.clock.Now())
	if err == nil {
		return session, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.transitionFailure(ctx, publicID, domain.SessionStatusEnded)
	}
	return nil, err
}

// transitionFailure distinguishes a missing session from one in the wrong
// state after a conditional update touched no row.
func (s *SessionService) transitionFailure(ctx context.Context, publicID string, requested domain.SessionStatus) error {
	current, err := s.sessionRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return &TransitionError{Current: current.Status, Requested: requested}
}

// Get resolves a session by its public identifier
func (s *SessionService) Get(ctx context.Context, publicID string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

type ReservationSummary struct {
	ID       int64     `json:"id"`
	PublicID string    `json:"public_id"`
	UserID   int64     `json:"user_id"`
	ExpertID int64     `json:"expert_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

type SessionDetail struct {
	PublicID    string               `json:"public_id"`
	Channel     string               `json:"channel"`
	Status      domain.SessionStatus `json:"status"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	EndedAt     *time.Time           `json:"ended_at,omitempty"`
	Reservation *ReservationSummary  `json:"reservation"`
}

// GetDetail returns a session joined with its reservation's summary fields
func (s *SessionService) GetDetail(ctx context.Context, publicID string) (*SessionDetail, error) {
	session, err := s.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}

	detail := &SessionDetail{
		PublicID:  session.PublicID,
		Channel:   session.Channel,
		Status:    session.Status,
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
	}

	reservation, err := s.reservationRepo.GetByID(ctx, session.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return detail, nil
		}
		return nil, err
	}

	detail.Reservation = &ReservationSummary{
		ID:       reservation.ID,
		PublicID: reservation.PublicID,
		UserID:   reservation.UserID,
		ExpertID: reservation.ExpertID,
		StartAt:  reservation.StartAt,
		EndAt:    reservation.EndAt,
	}
	return detail, nil
}

// UpsertNote creates or replaces a user's private note on a session
func (s *SessionService) UpsertNote(ctx context.Context, publicID string, userID int64, content string) error {
	session, err := s.Get(ctx, publicID)
	if err != nil {
		return err
	}

	note := &domain.SessionNote{
		SessionID: session.ID,
		UserID:    userID,
		Content:   content,
	}
	return s.noteRepo.Upsert(ctx, note)
}

// GetNote returns a user's note on a session, empty if none exists
func (s *SessionService) GetNote(ctx context.Context, publicID string, userID int64) (string, error) {
	session, err := s.Get(ctx, publicID)
	if err != nil {
		return "", err
	}

	note, err := s.noteRepo.Get(ctx, session.ID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return note.Content, nil
}
