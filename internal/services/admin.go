package services

import (
	"context"
	"log"
	"sync"

	"excursion-booking-platform/internal/models"
)

// ReservationReader is the repository surface the admin service needs
// for reservation data
type ReservationReader interface {
	ListWithPassengers(ctx context.Context) ([]*models.Reservation, error)
	ListSeatLinks(ctx context.Context) ([]*models.ReservationSeat, error)
}

// PassengerReader is the repository surface the admin service needs for
// the passenger list
type PassengerReader interface {
	ListPassengers(ctx context.Context) ([]*models.Passenger, error)
}

// AdminService aggregates reservation, passenger and settings data for
// the administrator dashboard. Refresh performs sequential independent
// reads and combines the seat links into their reservations in memory;
// any read failure aborts the whole refresh and keeps the prior cache.
type AdminService struct {
	settingsRepo    SettingsStore
	reservationRepo ReservationReader
	passengerRepo   PassengerReader

	mu           sync.RWMutex
	reservations []*models.Reservation
	passengers   []*models.Passenger
	settings     *models.AdminSettings
	loading      bool
}

// NewAdminService creates a new admin aggregate service
func NewAdminService(settingsRepo SettingsStore, reservationRepo ReservationReader, passengerRepo PassengerReader) *AdminService {
	return &AdminService{
		settingsRepo:    settingsRepo,
		reservationRepo: reservationRepo,
		passengerRepo:   passengerRepo,
	}
}

// Refresh reloads the dashboard read model. Failures are logged and
// leave the previously cached data in place.
func (s *AdminService) Refresh(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		log.Printf("Admin refresh: failed to fetch settings: %v", err)
		return
	}

	reservations, err := s.reservationRepo.ListWithPassengers(ctx)
	if err != nil {
		log.Printf("Admin refresh: failed to fetch reservations: %v", err)
		return
	}

	links, err := s.reservationRepo.ListSeatLinks(ctx)
	if err != nil {
		log.Printf("Admin refresh: failed to fetch reservation seats: %v", err)
		return
	}

	passengers, err := s.passengerRepo.ListPassengers(ctx)
	if err != nil {
		log.Printf("Admin refresh: failed to fetch passengers: %v", err)
		return
	}

	// Combine seat links into their reservations by reservation identity
	linksByReservation := make(map[int][]*models.ReservationSeat, len(reservations))
	for _, link := range links {
		linksByReservation[link.ReservationID] = append(linksByReservation[link.ReservationID], link)
	}
	for _, res := range reservations {
		res.SeatLinks = linksByReservation[res.ID]
	}

	s.mu.Lock()
	s.settings = settings
	s.reservations = reservations
	s.passengers = passengers
	s.mu.Unlock()
}

// Reservations returns the cached combined reservation list
func (s *AdminService) Reservations() []*models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// Passengers returns the cached passenger list
func (s *AdminService) Passengers() []*models.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Passenger, len(s.passengers))
	copy(out, s.passengers)
	return out
}

// Settings returns the settings snapshot taken by the last refresh
func (s *AdminService) Settings() *models.AdminSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil
	}
	copied := *s.settings
	return &copied
}

// Loading reports whether a refresh is in flight
func (s *AdminService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Revenue sums total_price over confirmed reservations
func (s *AdminService) Revenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, res := range s.reservations {
		if res.Status == models.ReservationConfirmed {
			total += res.TotalPrice
		}
	}
	return total
}

// SoldSeats counts seats linked to confirmed reservations
func (s *AdminService) SoldSeats() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sold int
	for _, res := range s.reservations {
		if res.Status == models.ReservationConfirmed {
			sold += len(res.SeatLinks)
		}
	}
	return sold
}

// Occupancy returns the sold share of the fixed seat map as a
// percentage
func (s *AdminService) Occupancy() float64 {
	return float64(s.SoldSeats()) / float64(models.TotalSeats) * 100
}

func (s *AdminService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
