// Package ratelimit implements the token bucket that throttles outgoing
// requests against the platform's request quota.
package ratelimit

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

const DefaultInterval = time.Second

// Bucket is a token bucket with continuous wall-clock refill. Tokens
// accumulate at refillRate per interval, capped at capacity, so idle periods
// never bank more than one full burst. State is mutex-protected; Take never
// deducts more tokens than are available, regardless of how many goroutines
// contend for them.
type Bucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64
	interval   time.Duration
	lastRefill time.Time

	now func() time.Time
}

// New creates a bucket holding capacity tokens, refilled at rate tokens per
// interval. A zero interval defaults to one second.
func New(capacity, rate int, interval time.Duration) *Bucket {
	if interval <= 0 {
		interval = DefaultInterval
	}

	b := &Bucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(rate),
		interval:   interval,
		now:        time.Now,
	}

	b.lastRefill = b.now()

	return b
}

// Take blocks until n tokens are available, then deducts them. It returns
// early with the context error if ctx is cancelled while waiting. The bucket
// is re-checked after every sleep, so concurrent takers cannot drive the
// token count negative.
func (b *Bucket) Take(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}

	need := float64(n)
	if need > b.capacity {
		return errors.New("ratelimit: requested more tokens than bucket capacity")
	}

	for {
		b.mu.Lock()
		b.refill()

		if b.tokens >= need {
			b.tokens -= need
			b.mu.Unlock()

			return nil
		}

		wait := b.waitFor(need - b.tokens)
		b.mu.Unlock()

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Available returns the current token count after refill. Intended for
// logging and tests.
func (b *Bucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()

	return b.tokens
}

// refill credits tokens for the wall-clock time elapsed since the last
// refill. Caller must hold the lock.
func (b *Bucket) refill() {
	now := b.now()

	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return
	}

	b.tokens += elapsed.Seconds() / b.interval.Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}

	b.lastRefill = now
}

// waitFor returns how long the caller must sleep for deficit tokens to
// accrue. Caller must hold the lock.
func (b *Bucket) waitFor(deficit float64) time.Duration {
	intervals := deficit / b.refillRate

	return time.Duration(math.Ceil(intervals * float64(b.interval)))
}
