package ratelimit

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements token bucket rate limiting
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	now            func() time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a new rate limiter.
// maxTokens is the bucket size, refillRate how often one token is added
// (100ms = 10 requests/second).
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
		now:            time.Now,
	}
}

// PerSecond returns a limiter allowing rps requests per second with a burst of one.
// rps <= 0 means unlimited and returns nil, which Wait accepts.
func PerSecond(rps float64) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	return NewRateLimiter(1, time.Duration(float64(time.Second)/rps))
}

// Wait blocks until a token is available or ctx is done
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return ctx.Err()
	}
	for {
		wait, ok := rl.tryAcquire()
		if ok {
			return nil
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// tryAcquire takes a token if one is available, otherwise reports how long
// until the next refill
func (rl *RateLimiter) tryAcquire() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.refillRate <= 0 {
		return 0, true
	}

	elapsed := now.Sub(rl.lastRefillTime)
	if tokensToAdd := int(elapsed / rl.refillRate); tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefillTime = rl.lastRefillTime.Add(time.Duration(tokensToAdd) * rl.refillRate)
		if rl.tokens == rl.maxTokens {
			rl.lastRefillTime = now
		}
	}

	if rl.tokens > 0 {
		rl.tokens--
		return 0, true
	}
	return rl.refillRate - now.Sub(rl.lastRefillTime), false
}

// MultiRateLimiter manages rate limiters for different providers
type MultiRateLimiter struct {
	limiters map[string]*RateLimiter
	mu       sync.RWMutex
}

// NewMultiRateLimiter creates a new multi-provider rate limiter
func NewMultiRateLimiter() *MultiRateLimiter {
	return &MultiRateLimiter{
		limiters: make(map[string]*RateLimiter),
	}
}

// AddLimiter sets the limiter for a provider. A nil limiter removes it.
func (mrl *MultiRateLimiter) AddLimiter(provider string, limiter *RateLimiter) {
	mrl.mu.Lock()
	defer mrl.mu.Unlock()

	if limiter == nil {
		delete(mrl.limiters, provider)
		return
	}
	mrl.limiters[provider] = limiter
}

// Wait waits for the provider's limiter; providers without one pass immediately
func (mrl *MultiRateLimiter) Wait(ctx context.Context, provider string) error {
	return mrl.GetLimiter(provider).Wait(ctx)
}

// GetLimiter returns the limiter for a provider, or nil
func (mrl *MultiRateLimiter) GetLimiter(provider string) *RateLimiter {
	if mrl == nil {
		return nil
	}
	mrl.mu.RLock()
	defer mrl.mu.RUnlock()

	return mrl.limiters[provider]
}
