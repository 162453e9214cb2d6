package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCanceled  ReservationStatus = "CANCELED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// Reservation is the booking record a session is bound to. This service only
// reads reservations; the booking subsystem owns them.
type Reservation struct {
	ID        int64             `json:"id" db:"id"`
	PublicID  string            `json:"public_id" db:"public_id"`
	UserID    int64             `json:"user_id" db:"user_id"`
	ExpertID  int64             `json:"expert_id" db:"expert_id"`
	Status    ReservationStatus `json:"status" db:"status"`
	StartAt   time.Time         `json:"start_at" db:"start_at"`
	EndAt     time.Time         `json:"end_at" db:"end_at"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}
