package images

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultBackoff applies when a 429 carries no usable Retry-After.
const defaultBackoff = 30 * time.Second

// RateLimiter spaces out remote image fetches with a token bucket and
// honours server-requested backoff after a 429.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter allowing perSecond fetches with a burst
// of burst. A non-positive rate disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Wait blocks until a fetch may start.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimit pushes every later fetch back by d.
func (r *RateLimiter) RecordRateLimit(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if at := time.Now().Add(d); at.After(r.retryAt) {
		r.retryAt = at
	}
}

// Allow reports whether a fetch could start now without waiting.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
