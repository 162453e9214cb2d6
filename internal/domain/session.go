package domain

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusLive      SessionStatus = "LIVE"
	SessionStatusEnded     SessionStatus = "ENDED"
)

// CallRole is the caller-facing role for joining a session. Host maps to
// publisher-class transport permission, audience to subscriber-class.
type CallRole string

const (
	CallRoleHost     CallRole = "host"
	CallRoleAudience CallRole = "audience"
)

type Session struct {
	ID            int64         `json:"-" db:"id"`
	PublicID      string        `json:"public_id" db:"public_id"`
	ReservationID int64         `json:"reservation_id" db:"reservation_id"`
	Channel       string        `json:"channel" db:"channel"`
	Status        SessionStatus `json:"status" db:"status"`
	StartedAt     *time.Time    `json:"started_at,omitempty" db:"started_at"`
	EndedAt       *time.Time    `json:"ended_at,omitempty" db:"ended_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}
