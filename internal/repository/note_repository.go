package repository

import (
	"context"

	"github.com/andressep95/session-service/internal/domain"
)

type NoteRepository interface {
	// Upsert creates or replaces the note for (session, user).
	Upsert(ctx context.Context, note *domain.SessionNote) error
	Get(ctx context.Context, sessionID, userID int64) (*domain.SessionNote, error)
}
