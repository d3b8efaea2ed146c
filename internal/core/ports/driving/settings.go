package driving

import "github.com/custodia-labs/cvboard/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend updates the storage backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetPassword stores a bcrypt hash of the edit-mode password.
	SetPassword(password string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
