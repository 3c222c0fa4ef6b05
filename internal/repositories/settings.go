package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"excursion-booking-platform/internal/models"
)

// SettingsRepository handles the singleton settings row
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves the singleton settings row
func (r *SettingsRepository) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	query := `
		SELECT id, logo_url, whatsapp_number, reservation_timeout_hours,
		       email_notifications, sms_notifications, created_at, updated_at
		FROM settings
		WHERE id = $1`

	settings := &models.AdminSettings{}
	err := r.db.QueryRowContext(ctx, query, models.SettingsRowID).Scan(
		&settings.ID,
		&settings.LogoURL,
		&settings.WhatsAppNumber,
		&settings.ReservationTimeoutHours,
		&settings.EmailNotifications,
		&settings.SMSNotifications,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings applies a partial update against the singleton row and
// returns the row as stored by the server. It never inserts a second row.
func (r *SettingsRepository) UpdateSettings(ctx context.Context, req *models.SettingsUpdateRequest) (*models.AdminSettings, error) {
	current, err := r.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current settings: %w", err)
	}

	if req.LogoURL != nil {
		current.LogoURL = *req.LogoURL
	}
	if req.WhatsAppNumber != nil {
		current.WhatsAppNumber = *req.WhatsAppNumber
	}
	if req.ReservationTimeoutHours != nil {
		current.ReservationTimeoutHours = *req.ReservationTimeoutHours
	}
	if req.EmailNotifications != nil {
		current.EmailNotifications = *req.EmailNotifications
	}
	if req.SMSNotifications != nil {
		current.SMSNotifications = *req.SMSNotifications
	}

	query := `
		UPDATE settings
		SET logo_url = $2, whatsapp_number = $3, reservation_timeout_hours = $4,
		    email_notifications = $5, sms_notifications = $6, updated_at = $7
		WHERE id = $1
		RETURNING id, logo_url, whatsapp_number, reservation_timeout_hours,
		          email_notifications, sms_notifications, created_at, updated_at`

	updated := &models.AdminSettings{}
	err = r.db.QueryRowContext(ctx, query,
		models.SettingsRowID,
		current.LogoURL,
		current.WhatsAppNumber,
		current.ReservationTimeoutHours,
		current.EmailNotifications,
		current.SMSNotifications,
		time.Now(),
	).Scan(
		&updated.ID,
		&updated.LogoURL,
		&updated.WhatsAppNumber,
		&updated.ReservationTimeoutHours,
		&updated.EmailNotifications,
		&updated.SMSNotifications,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return updated, nil
}

// InitializeDefaultSettings creates the singleton row if it does not
// exist yet
func (r *SettingsRepository) InitializeDefaultSettings(ctx context.Context) error {
	defaults := models.DefaultSettings()
	query := `
		INSERT INTO settings (
			id, logo_url, whatsapp_number, reservation_timeout_hours,
			email_notifications, sms_notifications, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		models.SettingsRowID,
		defaults.LogoURL,
		defaults.WhatsAppNumber,
		defaults.ReservationTimeoutHours,
		defaults.EmailNotifications,
		defaults.SMSNotifications,
		defaults.CreatedAt,
		defaults.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to initialize default settings: %w", err)
	}

	return nil
}
