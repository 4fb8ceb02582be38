// Package ratelimit throttles calls to the generative fallback process-wide.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

const DefaultMinInterval = 2 * time.Second

// Limiter is a single bucket of capacity one refilled every minInterval.
// It is safe for concurrent use.
type Limiter struct {
	minInterval time.Duration
	bucket      *rate.Limiter
}

// New returns a limiter whose first acquisition always succeeds.
// A non-positive interval falls back to DefaultMinInterval. The interval is
// rounded to whole milliseconds, the resolution at which the bucket's refill
// boundary is exact.
func New(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	minInterval = max(minInterval.Round(time.Millisecond), time.Millisecond)
	return &Limiter{
		minInterval: minInterval,
		bucket:      rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// TryAcquire takes the token at now if at least minInterval passed since the
// last successful acquisition. A rejected attempt leaves the state untouched.
func (l *Limiter) TryAcquire(now time.Time) bool {
	return l.bucket.AllowN(now, 1)
}

func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}
