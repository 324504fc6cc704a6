package sources

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter throttles outbound requests to a single source with a randomized
// minimum delay. Each adapter owns its own limiter, so different sources are
// never serialized against each other.
type Limiter struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLimiter creates a limiter drawing delays uniformly from [min, max]
func NewLimiter(min, max time.Duration) *Limiter {
	if max < min {
		max = min
	}
	return &Limiter{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404
	}
}

// Delay returns one randomized delay from the configured interval
func (l *Limiter) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max == l.min {
		return l.min
	}
	return l.min + time.Duration(l.rng.Int63n(int64(l.max-l.min)))
}

// Wait blocks for one randomized delay. It never fails: if the context is
// done before the delay elapses the wait ends early and the request proceeds
// rather than hanging.
func (l *Limiter) Wait(ctx context.Context) {
	timer := time.NewTimer(l.Delay())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
