package models

import (
	"fmt"
	"strings"
	"time"
)

// Passenger represents a passenger record, created once per booking
// and never updated afterwards
type Passenger struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CPF       string    `json:"cpf" db:"cpf"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PassengerDraft holds the passenger fields collected by the form,
// before any identity or timestamp is assigned
type PassengerDraft struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

// Validate checks that all required passenger fields are present and
// the birth date parses
func (d *PassengerDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.CPF) == "" {
		return fmt.Errorf("cpf is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("email is invalid")
	}
	if strings.TrimSpace(d.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if _, err := d.ParsedBirthDate(); err != nil {
		return fmt.Errorf("birth date is invalid: %w", err)
	}
	return nil
}

// ParsedBirthDate parses the draft birth date
func (d *PassengerDraft) ParsedBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(d.BirthDate))
}
