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

type reservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a read-only PostgreSQL reservation repository
func NewReservationRepository(db *sqlx.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// GetByID retrieves a reservation by its ID
func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `
		SELECT id, public_id, user_id, expert_id, status, start_at, end_at, created_at
		FROM reservations
		WHERE id = $1`

	var reservation domain.Reservation
	err := r.db.GetContext(ctx, &reservation, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by id: %w", err)
	}

	return &reservation, nil
}
