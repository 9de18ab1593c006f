// ABOUTME: Sliding-window rate limiter for calls to the generation service
// ABOUTME: Blocks until the oldest timestamp leaves the window when at capacity
package embeddings

import (
	"log"
	"sync"
	"time"
)

// RateLimiter tracks call timestamps inside a sliding window. It gates
// enrichment calls only; local vector computation is never limited. Waiting
// out the window is a blocking delay, not an error.
type RateLimiter struct {
	mu     sync.Mutex
	clock  Clock
	max    int
	window time.Duration
	stamps []time.Time
}

// NewRateLimiter creates a limiter allowing max calls per window on the
// system clock.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return NewRateLimiterWithClock(max, window, systemClock{})
}

// NewRateLimiterWithClock creates a limiter on an explicit clock, so tests
// can drive it virtually.
func NewRateLimiterWithClock(max int, window time.Duration, clock Clock) *RateLimiter {
	return &RateLimiter{clock: clock, max: max, window: window}
}

// Wait discards timestamps older than the window, blocks until the oldest
// remaining one would expire if the window is full, then records this call.
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.prune(now)

	if len(r.stamps) >= r.max {
		sleep := r.window - now.Sub(r.stamps[0])
		if sleep > 0 {
			log.Printf("Rate limit reached, sleeping for %.2f seconds", sleep.Seconds())
			r.clock.Sleep(sleep)
		}
		now = r.clock.Now()
		r.prune(now)
	}

	r.stamps = append(r.stamps, now)
}

// Pending returns the number of calls currently inside the window.
func (r *RateLimiter) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune(r.clock.Now())
	return len(r.stamps)
}

func (r *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	keep := r.stamps[:0]
	for _, s := range r.stamps {
		if s.After(cutoff) {
			keep = append(keep, s)
		}
	}
	r.stamps = keep
}
