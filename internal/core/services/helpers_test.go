package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
)

var errStoreDown = errors.New("store down")

// flakyStore wraps the memory store and fails selected operations.
type flakyStore struct {
	*memory.KVStore

	mu      sync.Mutex
	failGet map[string]bool
	failSet map[string]bool
	failDel bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		KVStore: memory.NewKVStore(),
		failGet: make(map[string]bool),
		failSet: make(map[string]bool),
	}
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failGet[key]
	s.mu.Unlock()
	if fail {
		return "", false, errStoreDown
	}
	return s.KVStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	fail := s.failSet[key]
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.KVStore.Set(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, keys ...string) error {
	if s.failDel {
		return errStoreDown
	}
	return s.KVStore.Delete(ctx, keys...)
}

// fakeClock is a settable clock for time-dependent services.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
