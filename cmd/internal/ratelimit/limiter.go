package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxKeys caps the limiter map; the map is reset wholesale beyond this
// to keep memory bounded.
const maxKeys = 10000

// KeyedLimiter throttles per key (an email, an IP) with independent
// token buckets sharing one rate configuration.
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

func NewKeyedLimiter(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	return k.limiter(key).Allow()
}

func (k *KeyedLimiter) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.limiters) > maxKeys {
		k.limiters = make(map[string]*rate.Limiter)
	}

	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.rps, k.burst)
		k.limiters[key] = limiter
	}
	return limiter
}
