package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend identifies the key-value store that holds the CV.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps records in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageFile keeps one JSON file per key and notices external edits.
	StorageFile StorageBackend = "file"

	// StorageMemory keeps records in process memory only.
	StorageMemory StorageBackend = "memory"

	// StorageRedis keeps records in a Redis server.
	StorageRedis StorageBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageFile, StorageMemory, StorageRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (local database)"
	case StorageFile:
		return "Files (one JSON file per key)"
	case StorageMemory:
		return "Memory (nothing is kept after exit)"
	case StorageRedis:
		return "Redis (server)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageFile, StorageMemory, StorageRedis}
}

// StorageSettings configures where the CV is persisted.
type StorageSettings struct {
	// Backend selects the store implementation.
	Backend StorageBackend

	// Dir is the data directory for sqlite and file backends.
	// Empty means ~/.cvboard/data.
	Dir string

	// RedisAddr is host:port of the Redis server.
	RedisAddr string

	// RedisDB is the Redis logical database number.
	RedisDB int
}

// AutosaveSettings configures the debounced write policy.
type AutosaveSettings struct {
	// Delay is the quiet interval after the last edit before a save runs.
	Delay time.Duration
}

// SessionSettings configures the edit-mode lock.
// The lock is a UI convenience, not a security boundary.
type SessionSettings struct {
	// Window is how long a login stays valid.
	Window time.Duration

	// PollInterval is how often an open editor re-checks expiry.
	PollInterval time.Duration

	// Username is the edit-mode user name.
	Username string

	// PasswordHash is a bcrypt hash. Empty means the built-in password.
	PasswordHash string
}

// ImageSettings configures how embedded images are fetched for export.
type ImageSettings struct {
	// Timeout bounds a single image fetch.
	Timeout time.Duration

	// RatePerSecond limits remote fetches.
	RatePerSecond float64
}

// ExportSettings configures PDF export.
type ExportSettings struct {
	// Scale multiplies the raster resolution.
	Scale int
}

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	Storage  StorageSettings
	Autosave AutosaveSettings
	Session  SessionSettings
	Images   ImageSettings
	Export   ExportSettings
}

// Defaults for the session lock and autosave.
const (
	DefaultAutosaveDelay   = time.Second
	DefaultSessionWindow   = 2 * time.Hour
	DefaultSessionPoll     = time.Minute
	DefaultUsername        = "admin"
	DefaultPassword        = "cv2024"
	DefaultImageTimeout    = 10 * time.Second
	DefaultImageRate       = 4.0
	DefaultExportScale     = 2
	DefaultStorageBackend  = StorageSQLite
	DefaultRedisAddr       = "localhost:6379"
	DefaultExportedBy      = "cvboard"
	DefaultExportExtension = ".json"
)

// DefaultAppSettings returns sensible defaults for all settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend:   DefaultStorageBackend,
			RedisAddr: DefaultRedisAddr,
		},
		Autosave: AutosaveSettings{Delay: DefaultAutosaveDelay},
		Session: SessionSettings{
			Window:       DefaultSessionWindow,
			PollInterval: DefaultSessionPoll,
			Username:     DefaultUsername,
		},
		Images: ImageSettings{
			Timeout:       DefaultImageTimeout,
			RatePerSecond: DefaultImageRate,
		},
		Export: ExportSettings{Scale: DefaultExportScale},
	}
}
