package services

import (
	"context"
	"log"
	"sync"
	"time"

	"excursion-booking-platform/internal/models"
	"excursion-booking-platform/internal/repositories"
)

// SeatLister is the repository surface for seat inventory reads
type SeatLister interface {
	ListSeats(ctx context.Context) ([]models.Seat, error)
}

// BookingWriter is the repository surface for the booking transaction
type BookingWriter interface {
	CreateBooking(ctx context.Context, req repositories.BookingWrite) (*repositories.BookingRecord, error)
}

// SettingsProvider supplies the current event configuration; the
// booking workflow needs it for the reservation expiry horizon
type SettingsProvider interface {
	Current() *models.AdminSettings
}

// BookingDetails is the snapshot kept for the confirmation screen
// after a successful booking
type BookingDetails struct {
	Passenger   models.Passenger   `json:"passenger"`
	Reservation models.Reservation `json:"reservation"`
	Seats       []models.Seat      `json:"seats"`
}

// BookingService owns the booking workflow: the seat inventory
// snapshot, the visitor's seat selection and passenger draft, and the
// reservation write that finalizes a booking. Selection is optimistic
// against the local inventory snapshot; the write detects seats taken
// by a concurrent booking and reports SeatAlreadyTakenError.
type BookingService struct {
	seatRepo    SeatLister
	bookingRepo BookingWriter
	settings    SettingsProvider

	mu          sync.RWMutex
	seats       []models.Seat
	selected    []int
	draft       *models.PassengerDraft
	lastBooking *BookingDetails
	loading     bool
}

// NewBookingService creates a new booking workflow service
func NewBookingService(seatRepo SeatLister, bookingRepo BookingWriter, settings SettingsProvider) *BookingService {
	return &BookingService{
		seatRepo:    seatRepo,
		bookingRepo: bookingRepo,
		settings:    settings,
	}
}

// LoadSeats fetches the full seat set ordered by identifier and
// replaces the local inventory wholesale. Called at startup and again
// after every successful booking so newly occupied seats show up for
// other visitors.
func (s *BookingService) LoadSeats(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	seats, err := s.seatRepo.ListSeats(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.seats = seats
	s.mu.Unlock()
	return nil
}

// Seats returns the cached seat inventory
func (s *BookingService) Seats() []models.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// SelectedSeatIDs returns the selected seat identifiers in the order
// they were picked
func (s *BookingService) SelectedSeatIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.selected))
	copy(out, s.selected)
	return out
}

// ToggleSeat flips membership of a seat in the current selection and
// reports whether the seat ended up selected. The view layer guards
// occupied seats before calling; the selection itself is not
// re-validated against the server.
func (s *BookingService) ToggleSeat(seatID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.selected {
		if id == seatID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return false
		}
	}
	s.selected = append(s.selected, seatID)
	return true
}

// SetPassengerDraft replaces the draft wholesale; validation happens in
// the view layer before progression
func (s *BookingService) SetPassengerDraft(draft models.PassengerDraft) {
	s.mu.Lock()
	s.draft = &draft
	s.mu.Unlock()
}

// PassengerDraft returns the current draft, or nil
func (s *BookingService) PassengerDraft() *models.PassengerDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return nil
	}
	copied := *s.draft
	return &copied
}

// ClearSelection empties the seat selection and the passenger draft,
// used when the flow restarts
func (s *BookingService) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.draft = nil
	s.mu.Unlock()
}

// TotalPrice sums the prices of the selected seats against the local
// inventory snapshot
func (s *BookingService) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPriceLocked()
}

// LastBooking returns the snapshot of the most recent successful
// booking, for the confirmation screen
func (s *BookingService) LastBooking() *BookingDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastBooking
}

// Loading reports whether a seat inventory load is in flight
func (s *BookingService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CreateBooking finalizes the reservation: it validates preconditions,
// prices the selection against the local snapshot, and hands the whole
// write sequence to the repository as one transaction. On success it
// keeps the booking snapshot for the confirmation screen and reloads
// the seat inventory.
func (s *BookingService) CreateBooking(ctx context.Context, paymentMethod string, installments int) (*BookingDetails, error) {
	s.mu.Lock()

	var missing []string
	if s.draft == nil {
		missing = append(missing, "passenger data")
	}
	if len(s.selected) == 0 {
		missing = append(missing, "seat selection")
	}
	settings := s.settings.Current()
	if settings == nil {
		missing = append(missing, "event settings")
	}
	if len(missing) > 0 {
		s.mu.Unlock()
		return nil, &models.IncompleteBookingError{Missing: missing}
	}

	req := repositories.BookingWrite{
		Draft:         *s.draft,
		SeatIDs:       append([]int(nil), s.selected...),
		TotalPrice:    s.totalPriceLocked(),
		PaymentMethod: paymentMethod,
		Installments:  installments,
		ExpiresAt:     time.Now().Add(time.Duration(settings.ReservationTimeoutHours) * time.Hour),
	}
	bookedSeats := s.selectedSeatsLocked()
	s.mu.Unlock()

	record, err := s.bookingRepo.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	details := &BookingDetails{
		Passenger:   record.Passenger,
		Reservation: record.Reservation,
		Seats:       bookedSeats,
	}

	s.mu.Lock()
	s.lastBooking = details
	s.mu.Unlock()

	if err := s.LoadSeats(ctx); err != nil {
		log.Printf("Failed to reload seats after booking: %v", err)
	}

	return details, nil
}

func (s *BookingService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// totalPriceLocked sums selected seat prices; callers hold s.mu
func (s *BookingService) totalPriceLocked() float64 {
	var total float64
	for _, id := range s.selected {
		for i := range s.seats {
			if s.seats[i].ID == id {
				total += s.seats[i].Price
				break
			}
		}
	}
	return total
}

// selectedSeatsLocked resolves the selected identifiers against the
// local inventory snapshot; callers hold s.mu
func (s *BookingService) selectedSeatsLocked() []models.Seat {
	seats := make([]models.Seat, 0, len(s.selected))
	for _, id := range s.selected {
		for i := range s.seats {
			if s.seats[i].ID == id {
				seats = append(seats, s.seats[i])
				break
			}
		}
	}
	return seats
}
