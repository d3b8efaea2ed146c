package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// authenticatedValue is the flag value stored while logged in.
const authenticatedValue = "true"

// SessionService keeps a timed login flag in the key-value store. It
// locks edit mode for casual visitors and nothing more.
type SessionService struct {
	store    driven.KeyValueStore
	now      func() time.Time
	window   time.Duration
	poll     time.Duration
	username string

	hashOnce sync.Once
	hash     []byte
	hashErr  error
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithSessionClock overrides the clock used for login timestamps.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// NewSessionService creates a session service from settings. An empty
// password hash selects the built-in password.
func NewSessionService(store driven.KeyValueStore, cfg domain.SessionSettings, opts ...SessionOption) *SessionService {
	s := &SessionService{
		store:    store,
		now:      time.Now,
		window:   cfg.Window,
		poll:     cfg.PollInterval,
		username: cfg.Username,
	}
	if s.window <= 0 {
		s.window = domain.DefaultSessionWindow
	}
	if s.poll <= 0 {
		s.poll = domain.DefaultSessionPoll
	}
	if s.username == "" {
		s.username = domain.DefaultUsername
	}
	if cfg.PasswordHash != "" {
		s.hash = []byte(cfg.PasswordHash)
		s.hashOnce.Do(func() {})
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAuthentication reports whether the stored login is still inside the
// session window. An expired or unreadable login is cleared.
func (s *SessionService) CheckAuthentication(ctx context.Context) bool {
	flag, ok, err := s.store.Get(ctx, domain.KeyAuthenticated)
	if err != nil {
		logger.Warn("session: reading flag: %v", err)
		return false
	}
	if !ok || flag != authenticatedValue {
		return false
	}

	raw, ok, err := s.store.Get(ctx, domain.KeyAuthTimestamp)
	if err != nil {
		logger.Warn("session: reading timestamp: %v", err)
		return false
	}
	ts, parseErr := strconv.ParseInt(raw, 10, 64)
	if !ok || parseErr != nil {
		_ = s.Logout(ctx)
		return false
	}

	if s.now().UnixMilli()-ts > s.window.Milliseconds() {
		logger.Debug("session: login expired")
		_ = s.Logout(ctx)
		return false
	}
	return true
}

// Authenticate checks the credentials and logs in on success.
func (s *SessionService) Authenticate(ctx context.Context, username, password string) error {
	hash, err := s.passwordHash()
	if err != nil {
		return fmt.Errorf("preparing password hash: %w", err)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if !userOK || passErr != nil {
		logger.Debug("session: rejected login for %q", username)
		return domain.ErrAuthInvalid
	}
	return s.Login(ctx)
}

// passwordHash returns the configured hash, hashing the built-in password
// on first use.
func (s *SessionService) passwordHash() ([]byte, error) {
	s.hashOnce.Do(func() {
		s.hash, s.hashErr = bcrypt.GenerateFromPassword([]byte(domain.DefaultPassword), bcrypt.DefaultCost)
	})
	return s.hash, s.hashErr
}

// Login records a login at the current time.
func (s *SessionService) Login(ctx context.Context) error {
	if err := s.store.Set(ctx, domain.KeyAuthenticated, authenticatedValue); err != nil {
		return fmt.Errorf("storing login flag: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyAuthTimestamp, s.timestamp()); err != nil {
		return fmt.Errorf("storing login time: %w", err)
	}
	return nil
}

// Logout clears the login.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.KeyAuthenticated, domain.KeyAuthTimestamp); err != nil {
		return fmt.Errorf("clearing login: %w", err)
	}
	return nil
}

// ExtendSession restarts the window of an active login.
func (s *SessionService) ExtendSession(ctx context.Context) error {
	if !s.CheckAuthentication(ctx) {
		return domain.ErrAuthRequired
	}
	if err := s.store.Set(ctx, domain.KeyAuthTimestamp, s.timestamp()); err != nil {
		return fmt.Errorf("storing login time: %w", err)
	}
	return nil
}

// Remaining returns how long the current login stays valid, or zero when
// logged out.
func (s *SessionService) Remaining(ctx context.Context) time.Duration {
	if !s.CheckAuthentication(ctx) {
		return 0
	}
	raw, _, err := s.store.Get(ctx, domain.KeyAuthTimestamp)
	if err != nil {
		return 0
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	left := time.UnixMilli(ts).Add(s.window).Sub(s.now())
	if left < 0 {
		return 0
	}
	return left
}

// StartSessionCheck polls at the configured interval. When a login that
// was active at a tick has expired, onExpired runs once and polling stops.
// The returned cancel is idempotent and may be called from onExpired.
func (s *SessionService) StartSessionCheck(onExpired func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		expired := s.watch(ctx)
		cancel()
		close(done)
		if expired && onExpired != nil {
			onExpired()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

// watch blocks until ctx is cancelled or an active login expires.
func (s *SessionService) watch(ctx context.Context) bool {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			flag, ok, err := s.store.Get(ctx, domain.KeyAuthenticated)
			if err != nil || !ok || flag != authenticatedValue {
				continue
			}
			if !s.CheckAuthentication(ctx) {
				return true
			}
		}
	}
}

func (s *SessionService) timestamp() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10)
}
