package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KeyValueStore = (*KVStore)(nil)

// KVStore is an in-memory key-value store. Nothing survives Close.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVStore creates an empty in-memory key-value store.
func NewKVStore() *KVStore {
	return &KVStore{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

// Set stores value under key.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes the given keys.
func (s *KVStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// Close drops all values.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
