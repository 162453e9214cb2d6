package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/repository"
)

type noteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new PostgreSQL session note repository
func NewNoteRepository(db *sqlx.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

// Upsert creates or replaces the note for (session, user)
func (r *noteRepository) Upsert(ctx context.Context, note *domain.SessionNote) error {
	query := `
		INSERT INTO session_notes (session_id, user_id, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, user_id)
		DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		note.SessionID, note.UserID, note.Content,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert session note: %w", err)
	}

	return nil
}

// Get retrieves the note for (session, user)
func (r *noteRepository) Get(ctx context.Context, sessionID, userID int64) (*domain.SessionNote, error) {
	query := `
		SELECT id, session_id, user_id, content, created_at, updated_at
		FROM session_notes
		WHERE session_id = $1 AND user_id = $2`

	var note domain.SessionNote
	err := r.db.GetContext(ctx, &note, query, sessionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session note: %w", err)
	}

	return &note, nil
}
