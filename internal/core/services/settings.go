package services

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyStorageBackend   = "storage.backend"
	KeyStorageDir       = "storage.dir"
	KeyStorageRedisAddr = "storage.redis_addr"
	KeyStorageRedisDB   = "storage.redis_db"
	KeyAutosaveDelay    = "autosave.delay_ms"
	KeySessionWindow    = "session.window_minutes"
	KeySessionPoll      = "session.poll_seconds"
	KeyAuthUsername     = "auth.username"
	KeyAuthPasswordHash = "auth.password_hash"
	KeyImagesTimeout    = "images.timeout_seconds"
	KeyImagesRate       = "images.rate_per_second"
	KeyExportScale      = "export.scale"
)

// minPasswordLength is the shortest edit-mode password accepted.
const minPasswordLength = 4

// SettingsKeys lists every recognised configuration key.
func SettingsKeys() []string {
	return []string{
		KeyStorageBackend, KeyStorageDir, KeyStorageRedisAddr, KeyStorageRedisDB,
		KeyAutosaveDelay,
		KeySessionWindow, KeySessionPoll,
		KeyAuthUsername, KeyAuthPasswordHash,
		KeyImagesTimeout, KeyImagesRate,
		KeyExportScale,
	}
}

// SettingsService maps configuration keys onto AppSettings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:   s.getBackend(defaults.Storage.Backend),
			Dir:       s.configStore.GetString(KeyStorageDir),
			RedisAddr: s.getString(KeyStorageRedisAddr, defaults.Storage.RedisAddr),
			RedisDB:   s.configStore.GetInt(KeyStorageRedisDB),
		},
		Autosave: domain.AutosaveSettings{
			Delay: s.getDuration(KeyAutosaveDelay, time.Millisecond, defaults.Autosave.Delay),
		},
		Session: domain.SessionSettings{
			Window:       s.getDuration(KeySessionWindow, time.Minute, defaults.Session.Window),
			PollInterval: s.getDuration(KeySessionPoll, time.Second, defaults.Session.PollInterval),
			Username:     s.getString(KeyAuthUsername, defaults.Session.Username),
			PasswordHash: s.configStore.GetString(KeyAuthPasswordHash),
		},
		Images: domain.ImageSettings{
			Timeout:       s.getDuration(KeyImagesTimeout, time.Second, defaults.Images.Timeout),
			RatePerSecond: s.getFloat(KeyImagesRate, defaults.Images.RatePerSecond),
		},
		Export: domain.ExportSettings{
			Scale: s.getInt(KeyExportScale, defaults.Export.Scale),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyStorageBackend, settings.Storage.Backend.String()},
		{KeyStorageDir, settings.Storage.Dir},
		{KeyStorageRedisAddr, settings.Storage.RedisAddr},
		{KeyStorageRedisDB, settings.Storage.RedisDB},
		{KeyAutosaveDelay, int(settings.Autosave.Delay / time.Millisecond)},
		{KeySessionWindow, int(settings.Session.Window / time.Minute)},
		{KeySessionPoll, int(settings.Session.PollInterval / time.Second)},
		{KeyAuthUsername, settings.Session.Username},
		{KeyImagesTimeout, int(settings.Images.Timeout / time.Second)},
		{KeyImagesRate, settings.Images.RatePerSecond},
		{KeyExportScale, settings.Export.Scale},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Session.PasswordHash != "" {
		if err := s.configStore.Set(KeyAuthPasswordHash, settings.Session.PasswordHash); err != nil {
			return fmt.Errorf("save %s: %w", KeyAuthPasswordHash, err)
		}
	}

	return nil
}

// SetStorageBackend updates the storage backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetPassword stores a bcrypt hash of the edit-mode password.
func (s *SettingsService) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.configStore.Set(KeyAuthPasswordHash, string(hash)); err != nil {
		return fmt.Errorf("save %s: %w", KeyAuthPasswordHash, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * unit
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(KeyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
