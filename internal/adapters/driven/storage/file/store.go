// Package file provides a directory-backed driven.KeyValueStore with one
// JSON file per key. It also implements driven.ChangeWatcher so an open
// editor notices records written by another process.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.KeyValueStore = (*Store)(nil)
	_ driven.ChangeWatcher = (*Store)(nil)
)

// fileExt is appended to every key to form its file name.
const fileExt = ".json"

// Store keeps each key in <dir>/<key>.json. Writes go to a hidden temp
// file first and are renamed into place.
type Store struct {
	dir string

	mu      sync.Mutex
	written map[string]string
	watcher *fsnotify.Watcher
}

// NewStore creates a file store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{
		dir:     dir,
		written: make(map[string]string),
	}, nil
}

// Path returns the store directory.
func (s *Store) Path() string {
	return s.dir
}

func (s *Store) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("file store: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (s *Store) Set(_ context.Context, key, value string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}

	s.mu.Lock()
	s.written[key] = value
	s.mu.Unlock()

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Delete removes the files for the given keys.
func (s *Store) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		path, err := s.keyPath(key)
		if err != nil {
			return err
		}
		s.mu.Lock()
		delete(s.written, key)
		s.mu.Unlock()
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	return nil
}

// Close stops any active watcher.
func (s *Store) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}

// Watch streams keys whose files were changed by someone else. Writes made
// through this store are not reported.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, changed := s.handleFsEvent(event)
				if !changed {
					continue
				}
				select {
				case changes <- key:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("file store watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent maps a filesystem event to the changed key. Temp files,
// chmod-only events and echoes of our own writes are dropped.
func (s *Store) handleFsEvent(event fsnotify.Event) (string, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	key := strings.TrimSuffix(name, fileExt)

	data, err := os.ReadFile(event.Name)
	if err != nil {
		return key, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.written[key]; ok && last == string(data) {
		return "", false
	}
	return key, true
}
