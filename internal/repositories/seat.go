package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"excursion-booking-platform/internal/models"
)

// SeatRepository handles seat inventory reads. The seat map is a fixed
// set seeded by migrations; this system only ever transitions status.
type SeatRepository struct {
	db *sql.DB
}

// NewSeatRepository creates a new seat repository
func NewSeatRepository(db *sql.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// ListSeats retrieves the full seat set ordered by identifier
func (r *SeatRepository) ListSeats(ctx context.Context) ([]models.Seat, error) {
	query := `
		SELECT id, seat_number, seat_class, deck, status, price
		FROM seats
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	defer rows.Close()

	var seats []models.Seat
	for rows.Next() {
		var seat models.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.SeatNumber,
			&seat.Class,
			&seat.Deck,
			&seat.Status,
			&seat.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	return seats, nil
}

// GetSeat retrieves a single seat by identifier
func (r *SeatRepository) GetSeat(ctx context.Context, id int) (*models.Seat, error) {
	query := `
		SELECT id, seat_number, seat_class, deck, status, price
		FROM seats
		WHERE id = $1`

	seat := &models.Seat{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&seat.ID,
		&seat.SeatNumber,
		&seat.Class,
		&seat.Deck,
		&seat.Status,
		&seat.Price,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSeatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}

	return seat, nil
}
