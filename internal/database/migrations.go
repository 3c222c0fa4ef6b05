package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrator creates the schema and seeds the fixed data the system
// depends on: the singleton settings row and the 56-seat bus map.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// RunMigrations applies all schema statements and seeds in order
func (m *Migrator) RunMigrations() error {
	migrations := []struct {
		name string
		fn   func() error
	}{
		{"create_settings_table", m.createSettingsTable},
		{"create_passengers_table", m.createPassengersTable},
		{"create_seats_table", m.createSeatsTable},
		{"create_reservations_table", m.createReservationsTable},
		{"create_reservation_seats_table", m.createReservationSeatsTable},
		{"seed_seats", m.seedSeats},
		{"seed_settings", m.seedSettings},
	}

	for _, migration := range migrations {
		log.Printf("Running migration: %s", migration.name)
		if err := migration.fn(); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.name, err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

func (m *Migrator) createSettingsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY,
		logo_url TEXT NOT NULL DEFAULT '',
		whatsapp_number VARCHAR(32) NOT NULL DEFAULT '',
		reservation_timeout_hours INTEGER NOT NULL DEFAULT 24,
		email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
		sms_notifications BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) createPassengersTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS passengers (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		cpf VARCHAR(14) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		birth_date DATE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) createSeatsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS seats (
		id INTEGER PRIMARY KEY,
		seat_number INTEGER NOT NULL UNIQUE,
		seat_class VARCHAR(16) NOT NULL CHECK (seat_class IN ('leito', 'semi-leito')),
		deck VARCHAR(16) NOT NULL CHECK (deck IN ('inferior', 'superior')),
		status VARCHAR(16) NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'reserved', 'occupied')),
		price DECIMAL(10,2) NOT NULL
	)`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) createReservationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS reservations (
		id SERIAL PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		passenger_id INTEGER NOT NULL REFERENCES passengers(id),
		total_price DECIMAL(10,2) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'confirmed' CHECK (status IN ('reserved', 'confirmed', 'expired')),
		payment_method VARCHAR(32) NOT NULL,
		installments INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`
	_, err := m.db.Exec(query)
	return err
}

func (m *Migrator) createReservationSeatsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS reservation_seats (
		id SERIAL PRIMARY KEY,
		reservation_id INTEGER NOT NULL REFERENCES reservations(id),
		seat_id INTEGER NOT NULL REFERENCES seats(id)
	)`
	if _, err := m.db.Exec(query); err != nil {
		return err
	}

	// A seat may belong to at most one reservation; the booking
	// transaction relies on this to reject double-booking
	indexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_seats_seat_id
	ON reservation_seats(seat_id)`
	_, err := m.db.Exec(indexQuery)
	return err
}

// seedSeats inserts the fixed 56-seat map: seats 1-12 are leito on the
// lower deck, seats 13-56 are semi-leito on the upper deck
func (m *Migrator) seedSeats() error {
	query := `
	INSERT INTO seats (id, seat_number, seat_class, deck, status, price)
	SELECT
		n,
		n,
		CASE WHEN n <= 12 THEN 'leito' ELSE 'semi-leito' END,
		CASE WHEN n <= 12 THEN 'inferior' ELSE 'superior' END,
		'available',
		CASE WHEN n <= 12 THEN 950.00 ELSE 800.00 END
	FROM generate_series(1, 56) AS n
	ON CONFLICT (id) DO NOTHING`
	_, err := m.db.Exec(query)
	return err
}

// seedSettings inserts the singleton settings row with defaults
func (m *Migrator) seedSettings() error {
	query := `
	INSERT INTO settings (id, logo_url, whatsapp_number, reservation_timeout_hours, email_notifications, sms_notifications)
	VALUES (1, '', '', 24, TRUE, FALSE)
	ON CONFLICT (id) DO NOTHING`
	_, err := m.db.Exec(query)
	return err
}
