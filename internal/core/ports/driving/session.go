package driving

import (
	"context"
	"time"
)

// SessionService gates edit mode behind a timed local login.
// It is a UI convenience lock, not a security boundary.
type SessionService interface {
	// CheckAuthentication reports whether an unexpired login exists.
	// An expired login is cleared as a side effect.
	CheckAuthentication(ctx context.Context) bool

	// Authenticate verifies credentials and logs in on success.
	Authenticate(ctx context.Context, username, password string) error

	// Login records a login at the current time.
	Login(ctx context.Context) error

	// Logout clears the login.
	Logout(ctx context.Context) error

	// ExtendSession refreshes the login time if currently logged in.
	ExtendSession(ctx context.Context) error

	// Remaining returns how long the current login stays valid, or zero
	// when logged out.
	Remaining(ctx context.Context) time.Duration

	// StartSessionCheck polls for expiry and calls onExpired once when an
	// active login expires. The returned func stops polling.
	StartSessionCheck(onExpired func()) (cancel func())
}
