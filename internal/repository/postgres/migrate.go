package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The reservations table is owned by the booking subsystem; it is created
// here only so the service can run standalone in development.
const schemaMigration = `
CREATE TABLE IF NOT EXISTS reservations (
    id BIGSERIAL PRIMARY KEY,
    public_id TEXT NOT NULL,
    user_id BIGINT NOT NULL,
    expert_id BIGINT NOT NULL,
    status TEXT NOT NULL DEFAULT 'CONFIRMED',
    start_at TIMESTAMPTZ NOT NULL,
    end_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT reservations_public_id_unique UNIQUE (public_id)
);

CREATE TABLE IF NOT EXISTS sessions (
    id BIGSERIAL PRIMARY KEY,
    public_id TEXT NOT NULL,
    reservation_id BIGINT NOT NULL REFERENCES reservations(id),
    channel TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'SCHEDULED',
    started_at TIMESTAMPTZ,
    ended_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT sessions_public_id_unique UNIQUE (public_id),
    CONSTRAINT sessions_reservation_unique UNIQUE (reservation_id),
    CONSTRAINT sessions_channel_unique UNIQUE (channel),
    CONSTRAINT sessions_status_check CHECK (status IN ('SCHEDULED', 'LIVE', 'ENDED'))
);

CREATE TABLE IF NOT EXISTS session_notes (
    id BIGSERIAL PRIMARY KEY,
    session_id BIGINT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT session_notes_session_user_unique UNIQUE (session_id, user_id)
);
`

// Migrate applies the session schema
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaMigration); err != nil {
		return fmt.Errorf("failed to apply session schema: %w", err)
	}
	return nil
}
