package repository

import (
	"context"

	"github.com/andressep95/session-service/internal/domain"
)

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}
