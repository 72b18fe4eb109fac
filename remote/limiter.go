package remote

import (
	"context"
	"sync"
	"time"
)

/*
RateLimiter paces client requests with a token bucket. Each request takes a
token; tokens come back one per refill period up to the burst size, so short
bursts go straight through and sustained load settles at one request per
period.
*/
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	if maxTokens < 1 {
		maxTokens = 1
	}

	if refillRate <= 0 {
		refillRate = time.Millisecond
	}

	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Limit takes a token if one is available and reports whether the caller must wait.
func (rl *RateLimiter) Limit() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens > 0 {
		rl.tokens--
		return false
	}
	return true
}

// Wait blocks until a token is taken or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for rl.Limit() {
		timer := time.NewTimer(rl.untilNext())

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return nil
}

func (rl *RateLimiter) untilNext() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	wait := rl.refillRate - time.Since(rl.lastRefill)
	if wait <= 0 {
		return time.Millisecond
	}
	return wait
}

// refill adds one token per whole period since the last refill. Callers hold mu.
func (rl *RateLimiter) refill() {
	elapsed := time.Since(rl.lastRefill)
	tokensToAdd := int64(elapsed / rl.refillRate)

	if tokensToAdd > 0 {
		rl.tokens = min(rl.maxTokens, rl.tokens+int(tokensToAdd))
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}
}
