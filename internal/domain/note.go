package domain

import "time"

// SessionNote is a private per-user note attached to a session. One note per
// (session, user) pair.
type SessionNote struct {
	ID        int64     `json:"-" db:"id"`
	SessionID int64     `json:"-" db:"session_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
