package handlers

import (
	"log"
	"net/http"

	"excursion-booking-platform/internal/flow"
	"excursion-booking-platform/internal/models"
	"excursion-booking-platform/internal/services"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "excursion_session"
	sessionStep = "flow_step"
)

// FlowHandler drives the visitor through the booking flow: one screen
// at a time, forward only, with the admin panel as a side branch. The
// active step is persisted in the visitor session so a reload resumes
// where the visitor left off.
type FlowHandler struct {
	machine        *flow.Machine
	sessionStore   sessions.Store
	bookingService *services.BookingService
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(machine *flow.Machine, sessionStore sessions.Store, bookingService *services.BookingService) *FlowHandler {
	return &FlowHandler{
		machine:        machine,
		sessionStore:   sessionStore,
		bookingService: bookingService,
	}
}

// State returns the active step, resuming from the session if present
func (h *FlowHandler) State(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessionStore.Get(r, sessionName)
	if saved, ok := session.Values[sessionStep].(string); ok {
		h.machine.Set(flow.Step(saved))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"step": h.machine.Current(),
	})
}

// Advance moves one step forward along the primary chain
func (h *FlowHandler) Advance(w http.ResponseWriter, r *http.Request) {
	step := h.machine.Advance()
	h.saveStep(w, r, step)
	respondJSON(w, http.StatusOK, map[string]interface{}{"step": step})
}

// EnterAdmin switches to the admin panel
func (h *FlowHandler) EnterAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.machine.EnterAdmin(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	h.saveStep(w, r, flow.StepAdmin)
	respondJSON(w, http.StatusOK, map[string]interface{}{"step": flow.StepAdmin})
}

// ExitAdmin leaves the admin panel and returns to the welcome screen
func (h *FlowHandler) ExitAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.machine.ExitAdmin(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	h.saveStep(w, r, flow.StepWelcome)
	respondJSON(w, http.StatusOK, map[string]interface{}{"step": flow.StepWelcome})
}

// Restart returns to the welcome screen from the confirmation screen
// and clears the seat selection and passenger draft for the next
// booking
func (h *FlowHandler) Restart(w http.ResponseWriter, r *http.Request) {
	if err := h.machine.Restart(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	h.bookingService.ClearSelection()
	h.saveStep(w, r, flow.StepWelcome)
	respondJSON(w, http.StatusOK, map[string]interface{}{"step": flow.StepWelcome})
}

// Excursion returns the static trip sheet shown on the excursion screen
func (h *FlowHandler) Excursion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"title":       "Convenção Comadesma 2026",
		"origin":      "Goiânia, GO",
		"destination": "Açailândia, MA",
		"period":      "06 a 10/01/2026",
		"boardings": []map[string]string{
			{"location": "Setor Orlando de Moraes", "time": "21:00"},
			{"location": "Jardim Novo Mundo", "time": "22:00"},
		},
		"duration_hours": 22,
		"distance_km":    1470,
		"capacity":       models.TotalSeats,
		"pricing": []map[string]interface{}{
			{"class": models.SeatLeito, "deck": models.DeckInferior, "price": models.LeitoPrice, "seats": models.LeitoSeats},
			{"class": models.SeatSemiLeito, "deck": models.DeckSuperior, "price": models.SemiLeitoPrice, "seats": models.SemiLeitoSeats},
		},
	})
}

// saveStep persists the active step into the visitor session
func (h *FlowHandler) saveStep(w http.ResponseWriter, r *http.Request, step flow.Step) {
	session, _ := h.sessionStore.Get(r, sessionName)
	session.Values[sessionStep] = string(step)
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save flow session: %v", err)
	}
}
