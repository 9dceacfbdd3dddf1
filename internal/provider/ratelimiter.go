package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every outbound CoinGecko call.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
	now            func() time.Time
}

// NewRateLimiter creates a limiter holding maxTokens, regaining one token per refillInterval.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
		now:            time.Now,
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		delay := r.lastRefill.Add(r.refillInterval).Sub(r.now())
		r.mu.Unlock()

		if delay <= 0 {
			delay = time.Millisecond
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining reports how many calls can be made right now without waiting.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

func (r *RateLimiter) refill() {
	elapsed := r.now().Sub(r.lastRefill)
	newTokens := int(elapsed / r.refillInterval)
	if newTokens <= 0 {
		return
	}
	r.tokens += newTokens
	if r.tokens >= r.maxTokens {
		r.tokens = r.maxTokens
		r.lastRefill = r.now()
		return
	}
	r.lastRefill = r.lastRefill.Add(time.Duration(newTokens) * r.refillInterval)
}
