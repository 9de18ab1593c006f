// ABOUTME: Clock seam so time-dependent behavior runs on a virtual clock in tests
// ABOUTME: The system clock is the only production implementation
package embeddings

import "time"

// Clock abstracts now/sleep for the rate limiter and batch pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }
