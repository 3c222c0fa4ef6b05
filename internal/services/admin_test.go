package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excursion-booking-platform/internal/models"
)

type fakeSettingsStore struct {
	settings  *models.AdminSettings
	getErr    error
	updateErr error
	lastReq   *models.SettingsUpdateRequest
}

func (f *fakeSettingsStore) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) UpdateSettings(ctx context.Context, req *models.SettingsUpdateRequest) (*models.AdminSettings, error) {
	f.lastReq = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	updated := *f.settings
	if req.LogoURL != nil {
		updated.LogoURL = *req.LogoURL
	}
	if req.WhatsAppNumber != nil {
		updated.WhatsAppNumber = *req.WhatsAppNumber
	}
	if req.ReservationTimeoutHours != nil {
		updated.ReservationTimeoutHours = *req.ReservationTimeoutHours
	}
	if req.EmailNotifications != nil {
		updated.EmailNotifications = *req.EmailNotifications
	}
	if req.SMSNotifications != nil {
		updated.SMSNotifications = *req.SMSNotifications
	}
	f.settings = &updated
	copied := updated
	return &copied, nil
}

type fakeReservationReader struct {
	reservations []*models.Reservation
	links        []*models.ReservationSeat
	listErr      error
	linksErr     error
}

func (f *fakeReservationReader) ListWithPassengers(ctx context.Context) ([]*models.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reservations, nil
}

func (f *fakeReservationReader) ListSeatLinks(ctx context.Context) ([]*models.ReservationSeat, error) {
	if f.linksErr != nil {
		return nil, f.linksErr
	}
	return f.links, nil
}

type fakePassengerReader struct {
	passengers []*models.Passenger
	err        error
}

func (f *fakePassengerReader) ListPassengers(ctx context.Context) ([]*models.Passenger, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.passengers, nil
}

func newTestAdminService() (*AdminService, *fakeSettingsStore, *fakeReservationReader, *fakePassengerReader) {
	settingsRepo := &fakeSettingsStore{settings: models.DefaultSettings()}
	reservationRepo := &fakeReservationReader{
		reservations: []*models.Reservation{
			{ID: 1, Code: "a", TotalPrice: 950.00, Status: models.ReservationConfirmed},
			{ID: 2, Code: "b", TotalPrice: 800.00, Status: models.ReservationReserved},
			{ID: 3, Code: "c", TotalPrice: 800.00, Status: models.ReservationExpired},
			{ID: 4, Code: "d", TotalPrice: 1600.00, Status: models.ReservationConfirmed},
		},
		links: []*models.ReservationSeat{
			{ReservationID: 1, SeatID: 1},
			{ReservationID: 2, SeatID: 13},
			{ReservationID: 3, SeatID: 20},
			{ReservationID: 4, SeatID: 14},
			{ReservationID: 4, SeatID: 15},
		},
	}
	passengerRepo := &fakePassengerReader{
		passengers: []*models.Passenger{
			{ID: 1, Name: "Maria Silva"},
			{ID: 2, Name: "João Souza"},
		},
	}
	return NewAdminService(settingsRepo, reservationRepo, passengerRepo), settingsRepo, reservationRepo, passengerRepo
}

func TestRefreshCombinesSeatLinksIntoReservations(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	svc.Refresh(context.Background())

	reservations := svc.Reservations()
	require.Len(t, reservations, 4)

	byID := map[int]*models.Reservation{}
	for _, res := range reservations {
		byID[res.ID] = res
	}
	assert.Len(t, byID[1].SeatLinks, 1)
	assert.Len(t, byID[2].SeatLinks, 1)
	assert.Len(t, byID[3].SeatLinks, 1)
	assert.Len(t, byID[4].SeatLinks, 2)

	assert.Len(t, svc.Passengers(), 2)
	require.NotNil(t, svc.Settings())
	assert.Equal(t, 24, svc.Settings().ReservationTimeoutHours)
}

func TestRevenueCountsOnlyConfirmedReservations(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	svc.Refresh(context.Background())

	// Only confirmed totals count; reserved and expired are excluded
	assert.InDelta(t, 2550.00, svc.Revenue(), 0.001)
}

func TestRevenueExcludesReservedAndExpired(t *testing.T) {
	settingsRepo := &fakeSettingsStore{settings: models.DefaultSettings()}
	reservationRepo := &fakeReservationReader{
		reservations: []*models.Reservation{
			{ID: 1, TotalPrice: 950.00, Status: models.ReservationConfirmed},
			{ID: 2, TotalPrice: 800.00, Status: models.ReservationReserved},
			{ID: 3, TotalPrice: 800.00, Status: models.ReservationExpired},
		},
	}
	svc := NewAdminService(settingsRepo, reservationRepo, &fakePassengerReader{})
	svc.Refresh(context.Background())

	assert.InDelta(t, 950.00, svc.Revenue(), 0.001)
}

func TestSoldSeatsAndOccupancy(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	svc.Refresh(context.Background())

	// 3 seats on confirmed reservations out of 56; reserved and
	// expired links are not sold
	assert.Equal(t, 3, svc.SoldSeats())
	assert.InDelta(t, 3.0/56.0*100, svc.Occupancy(), 0.001)
}

func TestRefreshFailureKeepsPriorCache(t *testing.T) {
	svc, _, reservationRepo, _ := newTestAdminService()
	svc.Refresh(context.Background())
	require.Len(t, svc.Reservations(), 4)

	reservationRepo.listErr = errors.New("connection refused")
	reservationRepo.reservations = nil
	svc.Refresh(context.Background())

	// The failed refresh must not wipe the dashboard
	assert.Len(t, svc.Reservations(), 4)
	assert.InDelta(t, 2550.00, svc.Revenue(), 0.001)
}

func TestRefreshSettingsFailureAbortsWholeRefresh(t *testing.T) {
	svc, settingsRepo, reservationRepo, _ := newTestAdminService()
	svc.Refresh(context.Background())

	settingsRepo.getErr = errors.New("timeout")
	reservationRepo.reservations = append(reservationRepo.reservations,
		&models.Reservation{ID: 5, TotalPrice: 800.00, Status: models.ReservationConfirmed})
	svc.Refresh(context.Background())

	// No partial update: the new reservation is not visible either
	assert.Len(t, svc.Reservations(), 4)
}

func TestEmptyDashboardMetrics(t *testing.T) {
	settingsRepo := &fakeSettingsStore{settings: models.DefaultSettings()}
	svc := NewAdminService(settingsRepo, &fakeReservationReader{}, &fakePassengerReader{})
	svc.Refresh(context.Background())

	assert.Zero(t, svc.Revenue())
	assert.Zero(t, svc.SoldSeats())
	assert.Zero(t, svc.Occupancy())
}
