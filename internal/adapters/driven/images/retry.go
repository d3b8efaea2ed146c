package images

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/cvboard/internal/logger"
)

// RetryBaseDelay is the first backoff after an HTTP 429. Each further
// attempt doubles it. Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

const defaultMaxRetries = 3

// doWithRetry executes req and retries on HTTP 429 with exponential
// backoff, or the server's Retry-After when it is longer. After the last
// attempt the 429 response is returned for the caller to inspect.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, limiter *RateLimiter, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if after := retryAfter(resp.Header); after > backoff {
			backoff = after
		}
		if limiter != nil {
			limiter.RecordRateLimit(backoff)
		}
		logger.Debug("image fetch rate limited, retrying in %v (attempt %d/%d)", backoff, attempt+1, maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
