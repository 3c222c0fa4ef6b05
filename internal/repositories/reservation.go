package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"excursion-booking-platform/internal/models"
)

// ReservationRepository handles reservation reads for the admin views
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ListWithPassengers retrieves all reservations joined with their
// passenger, newest first
func (r *ReservationRepository) ListWithPassengers(ctx context.Context) ([]*models.Reservation, error) {
	query := `
		SELECT r.id, r.code, r.passenger_id, r.total_price, r.status,
		       r.payment_method, r.installments, r.created_at, r.expires_at,
		       p.id, p.name, p.cpf, p.email, p.phone, p.birth_date, p.created_at
		FROM reservations r
		JOIN passengers p ON p.id = r.passenger_id
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res := &models.Reservation{Passenger: &models.Passenger{}}
		err := rows.Scan(
			&res.ID,
			&res.Code,
			&res.PassengerID,
			&res.TotalPrice,
			&res.Status,
			&res.PaymentMethod,
			&res.Installments,
			&res.CreatedAt,
			&res.ExpiresAt,
			&res.Passenger.ID,
			&res.Passenger.Name,
			&res.Passenger.CPF,
			&res.Passenger.Email,
			&res.Passenger.Phone,
			&res.Passenger.BirthDate,
			&res.Passenger.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}

	return reservations, nil
}

// ListSeatLinks retrieves all reservation-seat links joined with their
// seat detail
func (r *ReservationRepository) ListSeatLinks(ctx context.Context) ([]*models.ReservationSeat, error) {
	query := `
		SELECT rs.reservation_id, rs.seat_id,
		       s.id, s.seat_number, s.seat_class, s.deck, s.status, s.price
		FROM reservation_seats rs
		JOIN seats s ON s.id = rs.seat_id
		ORDER BY rs.reservation_id, s.seat_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation seats: %w", err)
	}
	defer rows.Close()

	var links []*models.ReservationSeat
	for rows.Next() {
		link := &models.ReservationSeat{Seat: &models.Seat{}}
		err := rows.Scan(
			&link.ReservationID,
			&link.SeatID,
			&link.Seat.ID,
			&link.Seat.SeatNumber,
			&link.Seat.Class,
			&link.Seat.Deck,
			&link.Seat.Status,
			&link.Seat.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation seat: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservation seats: %w", err)
	}

	return links, nil
}

// GetByCode retrieves a reservation by its public reference code
func (r *ReservationRepository) GetByCode(ctx context.Context, code string) (*models.Reservation, error) {
	query := `
		SELECT id, code, passenger_id, total_price, status,
		       payment_method, installments, created_at, expires_at
		FROM reservations
		WHERE code = $1`

	res := &models.Reservation{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&res.ID,
		&res.Code,
		&res.PassengerID,
		&res.TotalPrice,
		&res.Status,
		&res.PaymentMethod,
		&res.Installments,
		&res.CreatedAt,
		&res.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return res, nil
}
