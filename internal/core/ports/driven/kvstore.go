package driven

import "context"

// KeyValueStore is a small string key-value store, the Go counterpart of
// browser local storage. Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// The boolean is false, with a nil error, when the key does not exist.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases resources.
	Close() error
}

// ChangeWatcher reports keys changed by writers outside this process.
type ChangeWatcher interface {
	// Watch streams changed keys until ctx is cancelled. The channel is
	// closed when watching stops.
	Watch(ctx context.Context) (<-chan string, error)
}
