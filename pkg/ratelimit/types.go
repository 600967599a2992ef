package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window no longer constrains the key.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is the rate limiting interface consumed by the middleware.
type Limiter interface {
	// Allow checks whether one request is allowed for the key, consuming a
	// slot when it is.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status returns the current state for the key without consuming a slot.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset clears the window for the key.
	Reset(ctx context.Context, key string) error
}

// Store is the storage backend for the sliding window algorithm.
type Store interface {
	// RecordIfAllowed atomically counts live timestamps for the key and,
	// when under limit, records a new one. Returns whether the request was
	// recorded and the resulting count.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int64, err error)

	// CountInWindow returns the number of timestamps within the window.
	CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error)

	// Delete removes the key from the store.
	Delete(ctx context.Context, key string) error
}
