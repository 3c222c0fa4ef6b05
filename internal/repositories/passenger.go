package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"excursion-booking-platform/internal/models"
)

// PassengerRepository handles passenger data operations
type PassengerRepository struct {
	db *sql.DB
}

// NewPassengerRepository creates a new passenger repository
func NewPassengerRepository(db *sql.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// ListPassengers retrieves all passengers, newest first
func (r *PassengerRepository) ListPassengers(ctx context.Context) ([]*models.Passenger, error) {
	query := `
		SELECT id, name, cpf, email, phone, birth_date, created_at
		FROM passengers
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}
	defer rows.Close()

	var passengers []*models.Passenger
	for rows.Next() {
		p := &models.Passenger{}
		err := rows.Scan(&p.ID, &p.Name, &p.CPF, &p.Email, &p.Phone, &p.BirthDate, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan passenger: %w", err)
		}
		passengers = append(passengers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passengers: %w", err)
	}

	return passengers, nil
}
