package models

import "time"

// ReservationStatus represents the lifecycle state of a reservation.
// The only write path in this system creates reservations directly as
// confirmed; reserved and expired exist in the storage schema and are
// surfaced by the admin views but no process currently writes them.
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
)

// Payment method tags recorded on a reservation
const (
	PaymentCard            = "card"
	PaymentPixSingle       = "pix_single"
	PaymentPixInstallments = "pix_installments"
)

// Reservation represents a priced booking linking one passenger to one
// or more seats
type Reservation struct {
	ID            int               `json:"id" db:"id"`
	Code          string            `json:"code" db:"code"`
	PassengerID   int               `json:"passenger_id" db:"passenger_id"`
	TotalPrice    float64           `json:"total_price" db:"total_price"`
	Status        ReservationStatus `json:"status" db:"status"`
	PaymentMethod string            `json:"payment_method" db:"payment_method"`
	Installments  int               `json:"installments" db:"installments"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	ExpiresAt     time.Time         `json:"expires_at" db:"expires_at"`

	// Joined data, populated by the admin read path
	Passenger *Passenger         `json:"passenger,omitempty"`
	SeatLinks []*ReservationSeat `json:"reservation_seats,omitempty"`
}

// ReservationSeat links one reservation to one seat. A seat has at most
// one active link at a time, enforced by a unique index on seat_id and
// the compare-and-swap seat update inside the booking transaction.
type ReservationSeat struct {
	ReservationID int   `json:"reservation_id" db:"reservation_id"`
	SeatID        int   `json:"seat_id" db:"seat_id"`
	Seat          *Seat `json:"seat,omitempty"`
}

// ValidPaymentMethod reports whether the supplied payment method tag is
// one the payment screen offers
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCard, PaymentPixSingle, PaymentPixInstallments:
		return true
	}
	return false
}
