package screenslate

import (
	"context"
	"time"
)

// RateLimiter enforces a minimum interval between outbound requests so the
// upstream service is never hammered. All calls are issued from the single
// sequential pipeline, so no locking is needed.
type RateLimiter struct {
	minInterval time.Duration
	last        time.Time
}

// NewRateLimiter creates a limiter with the given minimum interval between
// calls. A non-positive interval disables waiting.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// Wait blocks until at least the minimum interval has elapsed since the
// previous call returned, then records the new call time. It returns early
// only when the context is canceled.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if !l.last.IsZero() && l.minInterval > 0 {
		if remaining := l.minInterval - time.Since(l.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	l.last = time.Now()
	return nil
}
