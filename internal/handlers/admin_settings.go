package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"excursion-booking-platform/internal/models"
	"excursion-booking-platform/internal/services"
)

// maxSettingsFormSize caps multipart settings submissions (logo included)
const maxSettingsFormSize = 10 << 20 // 10MB

// SettingsHandler exposes the event configuration to the admin panel
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the current event configuration
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings := h.settingsService.Current()
	if settings == nil {
		respondError(w, http.StatusServiceUnavailable, "Settings not loaded yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

// Update applies a partial settings update from a multipart form. Only
// fields present in the form change; an attached "logo" file replaces
// the stored logo.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSettingsFormSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	req, err := parseSettingsForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var logo *services.LogoUpload
	file, header, err := r.FormFile("logo")
	if err == nil {
		defer file.Close()
		logo = &services.LogoUpload{Reader: file, Filename: header.Filename}
	} else if !errors.Is(err, http.ErrMissingFile) {
		respondError(w, http.StatusBadRequest, "Invalid logo file")
		return
	}

	updated, err := h.settingsService.UpdateSettings(r.Context(), req, logo)
	if err != nil {
		var persist *models.ConfigPersistError
		if errors.As(err, &persist) {
			log.Printf("Settings update failed: %v", err)
			respondError(w, http.StatusInternalServerError, persist.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"settings": updated})
}

// parseSettingsForm builds the partial update from the form fields that
// were actually submitted
func parseSettingsForm(r *http.Request) (*models.SettingsUpdateRequest, error) {
	req := &models.SettingsUpdateRequest{}

	if values, ok := r.MultipartForm.Value["whatsapp_number"]; ok && len(values) > 0 {
		req.WhatsAppNumber = &values[0]
	}
	if values, ok := r.MultipartForm.Value["reservation_timeout_hours"]; ok && len(values) > 0 {
		hours, err := strconv.Atoi(values[0])
		if err != nil || hours < 1 {
			return nil, errors.New("reservation timeout must be a positive number of hours")
		}
		req.ReservationTimeoutHours = &hours
	}
	if values, ok := r.MultipartForm.Value["email_notifications"]; ok && len(values) > 0 {
		enabled, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, errors.New("email_notifications must be a boolean")
		}
		req.EmailNotifications = &enabled
	}
	if values, ok := r.MultipartForm.Value["sms_notifications"]; ok && len(values) > 0 {
		enabled, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, errors.New("sms_notifications must be a boolean")
		}
		req.SMSNotifications = &enabled
	}

	return req, nil
}
