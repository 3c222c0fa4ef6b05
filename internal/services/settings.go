package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"excursion-booking-platform/internal/models"
)

// SettingsStore is the repository surface the settings service needs
type SettingsStore interface {
	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	UpdateSettings(ctx context.Context, req *models.SettingsUpdateRequest) (*models.AdminSettings, error)
}

// SettingsService loads and caches the singleton event configuration
// and handles logo replacement on update. The cache is only replaced
// with rows returned by the server, never mutated optimistically.
type SettingsService struct {
	repo    SettingsStore
	storage StorageService
	images  *ImageService

	mu     sync.RWMutex
	cached *models.AdminSettings
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsStore, storage StorageService, images *ImageService) *SettingsService {
	return &SettingsService{
		repo:    repo,
		storage: storage,
		images:  images,
	}
}

// LogoUpload carries a replacement logo file supplied with a settings
// update
type LogoUpload struct {
	Reader   io.Reader
	Filename string
}

// Load fetches the singleton settings row and caches it
func (s *SettingsService) Load(ctx context.Context) error {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	s.cached = settings
	s.mu.Unlock()
	return nil
}

// Current returns the cached settings, or nil when the initial load has
// not completed yet
func (s *SettingsService) Current() *models.AdminSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil
	}
	copied := *s.cached
	return &copied
}

// UpdateSettings persists a partial settings update against the
// singleton row, optionally replacing the stored logo first. The old
// logo object is deleted best-effort; a delete failure never aborts the
// update. Upload and row-update failures surface as ConfigPersistError.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *models.SettingsUpdateRequest, logo *LogoUpload) (*models.AdminSettings, error) {
	current := s.Current()
	if current == nil {
		return nil, &models.ConfigPersistError{Op: "update", Err: models.ErrSettingsNotFound}
	}

	if logo != nil {
		if oldKey := s.logoKeyFromURL(current.LogoURL); oldKey != "" {
			if err := s.storage.Delete(ctx, oldKey); err != nil {
				log.Printf("Failed to delete previous logo %s: %v", oldKey, err)
			}
		}

		normalized, err := s.images.NormalizeLogo(logo.Reader)
		if err != nil {
			return nil, &models.ConfigPersistError{Op: "logo upload", Err: err}
		}

		// Fresh timestamped key so stale CDN caches never serve the old file
		key := fmt.Sprintf("logos/logo-%d-%s.png", time.Now().Unix(), uuid.New().String()[:8])
		url, err := s.storage.Upload(ctx, key, normalized.Data, normalized.ContentType, normalized.Size)
		if err != nil {
			return nil, &models.ConfigPersistError{Op: "logo upload", Err: err}
		}
		req.LogoURL = &url
	}

	updated, err := s.repo.UpdateSettings(ctx, req)
	if err != nil {
		return nil, &models.ConfigPersistError{Op: "update", Err: err}
	}

	s.mu.Lock()
	s.cached = updated
	s.mu.Unlock()

	copied := *updated
	return &copied, nil
}

// logoKeyFromURL recovers the storage key from a stored logo URL
func (s *SettingsService) logoKeyFromURL(url string) string {
	idx := strings.Index(url, "logos/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}
