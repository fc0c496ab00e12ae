// Package poll repeats a check with exponential backoff until it reports done.
package poll

import (
	"context"
	"math/rand"
	"time"
)

// Default backoff parameters.
const (
	DefaultInitialInterval   = 2 * time.Second
	DefaultMaxInterval       = 30 * time.Second
	DefaultBackoffMultiplier = 1.5
	DefaultJitterFactor      = 0.3
)

// Backoff describes the wait between checks. Zero fields take the defaults.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	// Jitter adds up to this fraction of the interval to every wait.
	Jitter float64
}

func (b Backoff) withDefaults() Backoff {
	if b.Initial <= 0 {
		b.Initial = DefaultInitialInterval
	}
	if b.Max <= 0 {
		b.Max = DefaultMaxInterval
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Multiplier < 1 {
		b.Multiplier = DefaultBackoffMultiplier
	}
	if b.Jitter < 0 {
		b.Jitter = 0
	}
	return b
}

// Check reports whether polling is finished. A non-nil error stops polling
// and is returned unchanged.
type Check func(ctx context.Context) (done bool, err error)

// Until runs check immediately and then after every backoff interval until it
// reports done, fails, or ctx ends.
func Until(ctx context.Context, b Backoff, check Check) error {
	b = b.withDefaults()
	interval := b.Initial

	for {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		// Add jitter to prevent thundering herd
		wait := interval + time.Duration(rand.Float64()*b.Jitter*float64(interval))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		interval = time.Duration(float64(interval) * b.Multiplier)
		if interval > b.Max {
			interval = b.Max
		}
	}
}
