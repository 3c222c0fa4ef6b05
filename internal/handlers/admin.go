package handlers

import (
	"net/http"

	"excursion-booking-platform/internal/services"
)

// AdminHandler exposes the administrator dashboard read model
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard returns the aggregated metrics and lists the dashboard
// renders from
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": h.adminService.Reservations(),
		"passengers":   h.adminService.Passengers(),
		"settings":     h.adminService.Settings(),
		"metrics": map[string]interface{}{
			"revenue":    h.adminService.Revenue(),
			"sold_seats": h.adminService.SoldSeats(),
			"occupancy":  h.adminService.Occupancy(),
		},
		"loading": h.adminService.Loading(),
	})
}

// Refresh reloads the dashboard read model from storage
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.adminService.Refresh(r.Context())
	h.Dashboard(w, r)
}

// Reservations returns the combined reservation list
func (h *AdminHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": h.adminService.Reservations(),
	})
}

// Passengers returns the passenger list
func (h *AdminHandler) Passengers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"passengers": h.adminService.Passengers(),
	})
}
