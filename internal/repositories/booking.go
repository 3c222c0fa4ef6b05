package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"excursion-booking-platform/internal/models"
)

// BookingRepository performs the multi-record booking write. All four
// writes run inside a single transaction: a failure at any step rolls
// back every earlier one, so no orphan passenger or reservation rows
// can be left behind.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingWrite carries everything the booking transaction needs
type BookingWrite struct {
	Draft         models.PassengerDraft
	SeatIDs       []int
	TotalPrice    float64
	PaymentMethod string
	Installments  int
	ExpiresAt     time.Time
}

// BookingRecord is the result of a successful booking write
type BookingRecord struct {
	Passenger   models.Passenger
	Reservation models.Reservation
}

// CreateBooking runs the booking write sequence in strict order:
// passenger insert, reservation insert, one seat link per selected
// seat, then the seat status flip. The status flip only matches seats
// still available; a shortfall means another booking got there first
// and the whole transaction is rolled back with SeatAlreadyTakenError.
func (r *BookingRepository) CreateBooking(ctx context.Context, req BookingWrite) (*BookingRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	record := &BookingRecord{}

	birthDate, err := req.Draft.ParsedBirthDate()
	if err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepCreatePassenger, Err: err}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO passengers (name, cpf, email, phone, birth_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, cpf, email, phone, birth_date, created_at`,
		req.Draft.Name,
		req.Draft.CPF,
		req.Draft.Email,
		req.Draft.Phone,
		birthDate,
		time.Now(),
	).Scan(
		&record.Passenger.ID,
		&record.Passenger.Name,
		&record.Passenger.CPF,
		&record.Passenger.Email,
		&record.Passenger.Phone,
		&record.Passenger.BirthDate,
		&record.Passenger.CreatedAt,
	)
	if err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepCreatePassenger, Err: err}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (code, passenger_id, total_price, status, payment_method, installments, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, code, passenger_id, total_price, status, payment_method, installments, created_at, expires_at`,
		uuid.New().String(),
		record.Passenger.ID,
		req.TotalPrice,
		models.ReservationConfirmed,
		req.PaymentMethod,
		req.Installments,
		time.Now(),
		req.ExpiresAt,
	).Scan(
		&record.Reservation.ID,
		&record.Reservation.Code,
		&record.Reservation.PassengerID,
		&record.Reservation.TotalPrice,
		&record.Reservation.Status,
		&record.Reservation.PaymentMethod,
		&record.Reservation.Installments,
		&record.Reservation.CreatedAt,
		&record.Reservation.ExpiresAt,
	)
	if err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepCreateReservation, Err: err}
	}

	for _, seatID := range req.SeatIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reservation_seats (reservation_id, seat_id)
			VALUES ($1, $2)`,
			record.Reservation.ID,
			seatID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, &models.SeatAlreadyTakenError{SeatIDs: []int{seatID}}
			}
			return nil, &models.BookingStepFailedError{Step: models.StepLinkSeats, Err: err}
		}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE seats
		SET status = $1
		WHERE id = ANY($2) AND status = $3`,
		models.SeatOccupied,
		pq.Array(req.SeatIDs),
		models.SeatAvailable,
	)
	if err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepOccupySeats, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepOccupySeats, Err: err}
	}
	if affected != int64(len(req.SeatIDs)) {
		return nil, &models.SeatAlreadyTakenError{SeatIDs: req.SeatIDs}
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.BookingStepFailedError{Step: models.StepFinalize, Err: err}
	}

	return record, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, which on reservation_seats means the seat is already linked
// to another reservation
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
