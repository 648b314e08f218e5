package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// TokenBucket is a per-key bucket guarding write-heavy endpoints (complaint
// submission, commenting).
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

type RateLimiter struct {
	buckets    map[string]*TokenBucket
	maxTokens  int
	refillRate int
	refillTime time.Duration
	mutex      sync.RWMutex
}

// NewRateLimiter creates a limiter whose per-key buckets hold maxTokens and
// gain refillRate tokens every refillTime.
func NewRateLimiter(maxTokens, refillRate int, refillTime time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
	}
}

func newTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) Allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens <= 0 {
		return false
	}
	tb.tokens--
	return true
}

// Allow reports whether the given user may perform the given action now.
func (rl *RateLimiter) Allow(userID, action string) bool {
	key := fmt.Sprintf("%s:%s", userID, action)

	rl.mutex.RLock()
	bucket, ok := rl.buckets[key]
	rl.mutex.RUnlock()

	if !ok {
		rl.mutex.Lock()
		bucket, ok = rl.buckets[key]
		if !ok {
			bucket = newTokenBucket(rl.maxTokens, rl.refillRate, rl.refillTime)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow()
}

// Cleanup drops buckets idle longer than maxIdle; run periodically.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		idle := bucket.lastRefill.Before(cutoff)
		bucket.mutex.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}
