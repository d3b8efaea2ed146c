// Package redis provides a Redis-backed driven.KeyValueStore. Several
// machines can share one CV; writes are announced on a pub/sub channel so
// open editors can reload.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	lowimpl "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.KeyValueStore = (*Store)(nil)
	_ driven.ChangeWatcher = (*Store)(nil)
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "cvboard:"

// changesChannel is the pub/sub channel suffix used for change events.
const changesChannel = "changes"

// Conf holds connection settings.
type Conf struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store is a Redis-backed key-value store.
type Store struct {
	conf     Conf
	instance string

	// implementation details, not exported
	internal *lowimpl.Client
}

// NewStore connects to Redis and verifies the connection with PING.
func NewStore(ctx context.Context, conf Conf) (*Store, error) {
	if conf.Prefix == "" {
		conf.Prefix = DefaultPrefix
	}
	s := &Store{
		conf:     conf,
		instance: uuid.NewString(),
		internal: lowimpl.NewClient(&lowimpl.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
			DB:       conf.DB,
		}),
	}
	if err := s.internal.Ping(ctx).Err(); err != nil {
		s.internal.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", conf.Addr, err)
	}
	logger.Debug("redis store connected to %s db %d", conf.Addr, conf.DB)
	return s, nil
}

// Path returns a display location for the store.
func (s *Store) Path() string {
	return fmt.Sprintf("redis://%s/%d/%s*", s.conf.Addr, s.conf.DB, s.conf.Prefix)
}

func (s *Store) key(k string) string {
	return s.conf.Prefix + k
}

func (s *Store) channel() string {
	return s.conf.Prefix + changesChannel
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.internal.Get(ctx, s.key(key)).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key and announces the change.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.internal.TxPipelined(ctx, func(p lowimpl.Pipeliner) error {
		p.Set(ctx, s.key(key), value, 0)
		p.Publish(ctx, s.channel(), encodeChange(s.instance, key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys and announces each removal.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	_, err := s.internal.TxPipelined(ctx, func(p lowimpl.Pipeliner) error {
		p.Del(ctx, full...)
		for _, k := range keys {
			p.Publish(ctx, s.channel(), encodeChange(s.instance, k))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting keys: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}

// Watch streams keys changed by other store instances.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.internal.Subscribe(ctx, s.channel())
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", s.channel(), err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				origin, key, valid := decodeChange(msg.Payload)
				if !valid || origin == s.instance {
					continue
				}
				select {
				case changes <- key:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return changes, nil
}

// encodeChange builds a change announcement payload.
func encodeChange(instance, key string) string {
	return instance + " " + key
}

// decodeChange splits a change announcement payload.
func decodeChange(payload string) (instance, key string, ok bool) {
	instance, key, ok = strings.Cut(payload, " ")
	if !ok || instance == "" || key == "" {
		return "", "", false
	}
	return instance, key, true
}
