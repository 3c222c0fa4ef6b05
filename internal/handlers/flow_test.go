package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excursion-booking-platform/internal/flow"
	"excursion-booking-platform/internal/models"
	"excursion-booking-platform/internal/services"
)

func newTestFlowHandler(t *testing.T) (*FlowHandler, *flow.Machine, *services.BookingService) {
	t.Helper()
	bookingService := services.NewBookingService(
		&stubSeatLister{seats: stubSeats()},
		&stubBookingWriter{},
		&stubSettingsProvider{settings: models.DefaultSettings()},
	)
	require.NoError(t, bookingService.LoadSeats(context.Background()))

	machine := flow.NewMachine()
	store := sessions.NewCookieStore([]byte("test-secret"))
	return NewFlowHandler(machine, store, bookingService), machine, bookingService
}

func flowRouter(h *FlowHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/flow", h.State)
	r.Post("/flow/advance", h.Advance)
	r.Post("/flow/restart", h.Restart)
	r.Post("/flow/admin/enter", h.EnterAdmin)
	r.Post("/flow/admin/exit", h.ExitAdmin)
	r.Get("/excursion", h.Excursion)
	return r
}

func stepFromBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Step string `json:"step"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Step
}

func TestFlowStateStartsAtWelcome(t *testing.T) {
	h, _, _ := newTestFlowHandler(t)
	r := flowRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flow", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", stepFromBody(t, w))
}

func TestFlowAdvancePersistsStepInSession(t *testing.T) {
	h, machine, _ := newTestFlowHandler(t)
	r := flowRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/advance", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "excursion", stepFromBody(t, w))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// A fresh machine resumes the persisted step from the cookie
	machine.Set(flow.StepWelcome)
	req := httptest.NewRequest(http.MethodGet, "/flow", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "excursion", stepFromBody(t, w))
}

func TestFlowAdminGuards(t *testing.T) {
	h, machine, _ := newTestFlowHandler(t)
	r := flowRouter(h)

	// Not reachable from welcome
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/admin/enter", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Reachable once past welcome, exits back to welcome
	machine.Set(flow.StepSeats)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/admin/enter", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", stepFromBody(t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/admin/exit", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", stepFromBody(t, w))
}

func TestFlowRestartClearsSelection(t *testing.T) {
	h, machine, bookingService := newTestFlowHandler(t)
	r := flowRouter(h)

	bookingService.ToggleSeat(1)
	bookingService.SetPassengerDraft(models.PassengerDraft{Name: "Maria Silva"})

	// Restart is rejected before the confirmation step
	machine.Set(flow.StepPayment)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/restart", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, []int{1}, bookingService.SelectedSeatIDs())

	machine.Set(flow.StepConfirmation)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flow/restart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "welcome", stepFromBody(t, w))
	assert.Empty(t, bookingService.SelectedSeatIDs())
	assert.Nil(t, bookingService.PassengerDraft())
}

func TestExcursionDetails(t *testing.T) {
	h, _, _ := newTestFlowHandler(t)
	r := flowRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/excursion", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Title    string `json:"title"`
		Capacity int    `json:"capacity"`
		Pricing  []struct {
			Price float64 `json:"price"`
			Seats int     `json:"seats"`
		} `json:"pricing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Convenção Comadesma 2026", body.Title)
	assert.Equal(t, 56, body.Capacity)
	require.Len(t, body.Pricing, 2)
	assert.InDelta(t, 950.00, body.Pricing[0].Price, 0.001)
	assert.Equal(t, 12, body.Pricing[0].Seats)
	assert.InDelta(t, 800.00, body.Pricing[1].Price, 0.001)
	assert.Equal(t, 44, body.Pricing[1].Seats)
}
