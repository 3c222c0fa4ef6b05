package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"excursion-booking-platform/internal/models"
	"excursion-booking-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// ReservationLookup resolves a reservation by its public code
type ReservationLookup interface {
	GetByCode(ctx context.Context, code string) (*models.Reservation, error)
}

// BookingHandler exposes the booking workflow: seat map, seat
// selection, passenger form, payment and confirmation
type BookingHandler struct {
	bookingService *services.BookingService
	paymentService *services.MockPaymentService
	reservations   ReservationLookup
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, paymentService *services.MockPaymentService, reservations ReservationLookup) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		paymentService: paymentService,
		reservations:   reservations,
	}
}

// SeatMap returns the full seat inventory grouped by deck, along with
// the current selection and its total price
func (h *BookingHandler) SeatMap(w http.ResponseWriter, r *http.Request) {
	seats := h.bookingService.Seats()

	var inferior, superior []models.Seat
	for _, seat := range seats {
		if seat.Deck == models.DeckInferior {
			inferior = append(inferior, seat)
		} else {
			superior = append(superior, seat)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"decks": map[string]interface{}{
			"inferior": inferior,
			"superior": superior,
		},
		"selected_seat_ids": h.bookingService.SelectedSeatIDs(),
		"total_price":       h.bookingService.TotalPrice(),
		"loading":           h.bookingService.Loading(),
	})
}

// ToggleSeat flips a seat in or out of the current selection. Occupied
// seats are rejected here; seats taken by a concurrent booking after
// this check are caught by the reservation write.
func (h *BookingHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := strconv.Atoi(chi.URLParam(r, "seatID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seat ID")
		return
	}

	var target *models.Seat
	for _, seat := range h.bookingService.Seats() {
		if seat.ID == seatID {
			s := seat
			target = &s
			break
		}
	}
	if target == nil {
		respondError(w, http.StatusNotFound, "Seat not found")
		return
	}
	if target.IsOccupied() {
		respondError(w, http.StatusConflict, "Seat is already occupied")
		return
	}

	selected := h.bookingService.ToggleSeat(seatID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"seat_id":           seatID,
		"selected":          selected,
		"selected_seat_ids": h.bookingService.SelectedSeatIDs(),
		"total_price":       h.bookingService.TotalPrice(),
	})
}

// SubmitPassenger validates and stores the passenger form data
func (h *BookingHandler) SubmitPassenger(w http.ResponseWriter, r *http.Request) {
	var draft models.PassengerDraft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := draft.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.bookingService.SetPassengerDraft(draft)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"passenger": draft,
	})
}

// paymentRequest is the payload of the payment screen submission
type paymentRequest struct {
	PaymentMethod string `json:"payment_method"`
	Installments  int    `json:"installments"`
}

// SubmitPayment runs the simulated charge and then the reservation
// write that finalizes the booking
func (h *BookingHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		respondError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}
	installments, err := normalizeInstallments(req.PaymentMethod, req.Installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	total := h.bookingService.TotalPrice()
	payment, err := h.paymentService.ProcessPayment(total, req.PaymentMethod, installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := h.bookingService.CreateBooking(r.Context(), req.PaymentMethod, installments)
	if err != nil {
		h.respondBookingError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"booking":            details,
		"payment":            payment,
		"installment_amount": h.paymentService.InstallmentAmount(details.Reservation.TotalPrice, installments),
	})
}

// Confirmation returns the snapshot of the last successful booking
func (h *BookingHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	details := h.bookingService.LastBooking()
	if details == nil {
		respondError(w, http.StatusNotFound, "No completed booking in this session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"booking": details,
	})
}

// LookupReservation resolves a reservation by the code printed on the
// confirmation screen
func (h *BookingHandler) LookupReservation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Reservation code is required")
		return
	}

	reservation, err := h.reservations.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, models.ErrReservationNotFound) {
			respondError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		log.Printf("Reservation lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to look up reservation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"reservation": reservation})
}

// respondBookingError maps booking failures onto HTTP status codes
func (h *BookingHandler) respondBookingError(w http.ResponseWriter, err error) {
	var incomplete *models.IncompleteBookingError
	if errors.As(err, &incomplete) {
		respondError(w, http.StatusBadRequest, incomplete.Error())
		return
	}

	var taken *models.SeatAlreadyTakenError
	if errors.As(err, &taken) {
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":    taken.Error(),
			"seat_ids": taken.SeatIDs,
		})
		return
	}

	log.Printf("Booking failed: %v", err)
	respondError(w, http.StatusInternalServerError, "Failed to create booking")
}

// normalizeInstallments applies the per-method installment rules: card
// allows 1 to 12, pix in installments is fixed at 3, single pix at 1
func normalizeInstallments(method string, installments int) (int, error) {
	switch method {
	case models.PaymentCard:
		if installments < 1 {
			return 1, nil
		}
		if installments > 12 {
			return 0, errors.New("card payments allow at most 12 installments")
		}
		return installments, nil
	case models.PaymentPixInstallments:
		return 3, nil
	default:
		return 1, nil
	}
}
