package models

// SeatClass represents the fare tier of a seat
type SeatClass string

const (
	SeatLeito     SeatClass = "leito"      // fully reclining
	SeatSemiLeito SeatClass = "semi-leito" // partial recline
)

// SeatDeck represents the physical vehicle level a seat sits on
type SeatDeck string

const (
	DeckInferior SeatDeck = "inferior"
	DeckSuperior SeatDeck = "superior"
)

// SeatStatus represents the availability state of a seat
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
	SeatOccupied  SeatStatus = "occupied"
)

// Fixed vehicle layout for the excursion bus
const (
	TotalSeats     = 56
	LeitoSeats     = 12
	SemiLeitoSeats = 44
)

// Fixed prices per seat class (in BRL)
const (
	LeitoPrice     = 950.00
	SemiLeitoPrice = 800.00
)

// Seat represents one seat in the fixed 56-seat bus layout
type Seat struct {
	ID         int        `json:"id" db:"id"`
	SeatNumber int        `json:"seat_number" db:"seat_number"`
	Class      SeatClass  `json:"class" db:"seat_class"`
	Deck       SeatDeck   `json:"deck" db:"deck"`
	Status     SeatStatus `json:"status" db:"status"`
	Price      float64    `json:"price" db:"price"`
}

// IsOccupied reports whether the seat can no longer be selected
func (s *Seat) IsOccupied() bool {
	return s.Status == SeatOccupied
}
