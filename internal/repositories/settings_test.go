package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excursion-booking-platform/internal/models"
)

func settingsRows(logoURL, whatsapp string, timeoutHours int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "logo_url", "whatsapp_number", "reservation_timeout_hours",
		"email_notifications", "sms_notifications", "created_at", "updated_at",
	}).AddRow(models.SettingsRowID, logoURL, whatsapp, timeoutHours, true, false, time.Now(), time.Now())
}

func TestGetSettingsTargetsSingletonRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(models.SettingsRowID).
		WillReturnRows(settingsRows("https://assets.example.com/logos/logo.png", "+55 62 99999-0000", 24))

	repo := NewSettingsRepository(db)
	settings, err := repo.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SettingsRowID, settings.ID)
	assert.Equal(t, "+55 62 99999-0000", settings.WhatsAppNumber)
	assert.Equal(t, 24, settings.ReservationTimeoutHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettingsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(models.SettingsRowID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewSettingsRepository(db)
	_, err = repo.GetSettings(context.Background())
	assert.ErrorIs(t, err, models.ErrSettingsNotFound)
}

func TestUpdateSettingsMergesPartialUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Read-merge-update: untouched fields keep their stored values
	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(models.SettingsRowID).
		WillReturnRows(settingsRows("https://assets.example.com/logos/logo.png", "+55 62 99999-0000", 24))

	mock.ExpectQuery("UPDATE settings").
		WithArgs(
			models.SettingsRowID,
			"https://assets.example.com/logos/logo.png",
			"+55 62 99999-0000",
			48,
			true,
			false,
			sqlmock.AnyArg(),
		).
		WillReturnRows(settingsRows("https://assets.example.com/logos/logo.png", "+55 62 99999-0000", 48))

	repo := NewSettingsRepository(db)
	hours := 48
	updated, err := repo.UpdateSettings(context.Background(), &models.SettingsUpdateRequest{
		ReservationTimeoutHours: &hours,
	})
	require.NoError(t, err)

	assert.Equal(t, 48, updated.ReservationTimeoutHours)
	assert.Equal(t, "https://assets.example.com/logos/logo.png", updated.LogoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsFailsWhenReadFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(models.SettingsRowID).
		WillReturnError(errors.New("connection refused"))

	repo := NewSettingsRepository(db)
	hours := 48
	_, err = repo.UpdateSettings(context.Background(), &models.SettingsUpdateRequest{
		ReservationTimeoutHours: &hours,
	})
	assert.Error(t, err)
}

func TestInitializeDefaultSettingsIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO settings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO settings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSettingsRepository(db)
	require.NoError(t, repo.InitializeDefaultSettings(context.Background()))
	require.NoError(t, repo.InitializeDefaultSettings(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
