package models

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout the application
var (
	ErrSettingsNotFound    = errors.New("settings row not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Booking write sequence step names, reported by BookingStepFailedError
const (
	StepCreatePassenger   = "create passenger"
	StepCreateReservation = "create reservation"
	StepLinkSeats         = "link seats"
	StepOccupySeats       = "occupy seats"
	StepFinalize          = "finalize booking"
)

// ConfigPersistError indicates the settings save failed, either during
// the logo upload or the row update
type ConfigPersistError struct {
	Op  string
	Err error
}

func (e *ConfigPersistError) Error() string {
	return fmt.Sprintf("failed to save settings (%s): %v", e.Op, e.Err)
}

func (e *ConfigPersistError) Unwrap() error { return e.Err }

// IncompleteBookingError indicates booking preconditions were unmet
// before any write was attempted
type IncompleteBookingError struct {
	Missing []string
}

func (e *IncompleteBookingError) Error() string {
	return fmt.Sprintf("booking is incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// BookingStepFailedError indicates one write in the booking sequence
// failed; the surrounding transaction was rolled back
type BookingStepFailedError struct {
	Step string
	Err  error
}

func (e *BookingStepFailedError) Error() string {
	return fmt.Sprintf("booking step %q failed: %v", e.Step, e.Err)
}

func (e *BookingStepFailedError) Unwrap() error { return e.Err }

// SeatAlreadyTakenError indicates another booking occupied one or more
// of the selected seats first; the client must refresh and re-select
type SeatAlreadyTakenError struct {
	SeatIDs []int
}

func (e *SeatAlreadyTakenError) Error() string {
	return fmt.Sprintf("one or more selected seats are no longer available: %v", e.SeatIDs)
}
