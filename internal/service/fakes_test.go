package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[int64]*domain.Reservation)}
}

func (r *fakeReservationRepo) put(reservation *domain.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations[reservation.ID] = reservation
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation, ok := r.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *reservation
	return &cp, nil
}

// fakeSessionRepo mimics the storage contract: uniqueness on the reservation
// reference and conditional status updates.
type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*domain.Session

	// beforeCreate runs once inside the next Create call, before the
	// uniqueness check, to simulate a concurrent winner.
	beforeCreate func()
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]*domain.Session)}
}

func (r *fakeSessionRepo) insert(session *domain.Session) *domain.Session {
	r.nextID++
	session.ID = r.nextID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.UpdatedAt = session.CreatedAt
	cp := *session
	r.sessions[session.ID] = &cp
	return session
}

func (r *fakeSessionRepo) put(session *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(session)
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}

	for _, existing := range r.sessions {
		if existing.ReservationID == session.ReservationID {
			return repository.ErrDuplicateSession
		}
		if existing.PublicID == session.PublicID || existing.Channel == session.Channel {
			return repository.ErrDuplicateSession
		}
	}

	r.insert(session)
	return nil
}

func (r *fakeSessionRepo) GetByPublicID(_ context.Context, publicID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.PublicID == publicID {
			cp := *session
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) GetByReservationID(_ context.Context, reservationID int64) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.ReservationID == reservationID {
			cp := *session
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) MarkStarted(_ context.Context, publicID string, at time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.PublicID == publicID && session.Status == domain.SessionStatusScheduled {
			started := at
			session.Status = domain.SessionStatusLive
			session.StartedAt = &started
			session.UpdatedAt = at
			cp := *session
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) MarkEnded(_ context.Context, publicID string, at time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.PublicID == publicID && session.Status == domain.SessionStatusLive {
			ended := at
			session.Status = domain.SessionStatusEnded
			session.EndedAt = &ended
			session.UpdatedAt = at
			cp := *session
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[[2]int64]*domain.SessionNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[[2]int64]*domain.SessionNote)}
}

func (r *fakeNoteRepo) Upsert(_ context.Context, note *domain.SessionNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *note
	r.notes[[2]int64{note.SessionID, note.UserID}] = &cp
	return nil
}

func (r *fakeNoteRepo) Get(_ context.Context, sessionID, userID int64) (*domain.SessionNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[[2]int64{sessionID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *note
	return &cp, nil
}
