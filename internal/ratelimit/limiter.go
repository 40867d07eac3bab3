package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter hands out one token bucket per upstream key, so that flight
// and airport lookups against the same provider can be throttled apart.
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	config   Config
}

type Config struct {
	// RequestsPerSecond of zero or less disables throttling.
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

func New(config Config) *KeyedLimiter {
	if config.Burst < 1 {
		config.Burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
	}
}

func (k *KeyedLimiter) limiterFor(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, exists := k.limiters[key]
	k.mu.RUnlock()

	if exists {
		return limiter
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if limiter, exists = k.limiters[key]; exists {
		return limiter
	}

	limit := rate.Inf
	if k.config.RequestsPerSecond > 0 {
		limit = rate.Limit(k.config.RequestsPerSecond)
	}
	limiter = rate.NewLimiter(limit, k.config.Burst)
	k.limiters[key] = limiter
	return limiter
}

// Wait blocks until key may issue a request or ctx is done.
func (k *KeyedLimiter) Wait(ctx context.Context, key string) error {
	if err := k.limiterFor(key).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", key, err)
	}
	return nil
}
