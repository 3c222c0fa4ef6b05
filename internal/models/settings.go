package models

import "time"

// SettingsRowID is the identity of the one settings row. Updates always
// target this row and never create a second one.
const SettingsRowID = 1

// AdminSettings represents the singleton configuration record governing
// event-wide behavior
type AdminSettings struct {
	ID                      int       `json:"id" db:"id"`
	LogoURL                 string    `json:"logo_url" db:"logo_url"`
	WhatsAppNumber          string    `json:"whatsapp_number" db:"whatsapp_number"`
	ReservationTimeoutHours int       `json:"reservation_timeout_hours" db:"reservation_timeout_hours"`
	EmailNotifications      bool      `json:"email_notifications" db:"email_notifications"`
	SMSNotifications        bool      `json:"sms_notifications" db:"sms_notifications"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

// SettingsUpdateRequest represents a partial update to the settings row.
// Nil fields are left unchanged.
type SettingsUpdateRequest struct {
	LogoURL                 *string `json:"logo_url"`
	WhatsAppNumber          *string `json:"whatsapp_number"`
	ReservationTimeoutHours *int    `json:"reservation_timeout_hours"`
	EmailNotifications      *bool   `json:"email_notifications"`
	SMSNotifications        *bool   `json:"sms_notifications"`
}

// DefaultSettings returns the settings the singleton row is seeded with
func DefaultSettings() *AdminSettings {
	return &AdminSettings{
		ID:                      SettingsRowID,
		LogoURL:                 "",
		WhatsAppNumber:          "",
		ReservationTimeoutHours: 24,
		EmailNotifications:      true,
		SMSNotifications:        false,
		CreatedAt:               time.Now(),
		UpdatedAt:               time.Now(),
	}
}
