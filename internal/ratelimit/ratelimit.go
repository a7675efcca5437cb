package ratelimit

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deusflow/newsagent/internal/logger"
)

// ErrBudgetExceeded is returned by Use once a daily limit is reached.
var ErrBudgetExceeded = errors.New("AI request budget exceeded")

// AIRateLimiter keeps a daily request budget for the AI providers.
// A limit of 0 means unlimited.
type AIRateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	limits      map[string]int
	totalCount  int
	maxTotal    int
	resetTime   time.Time
	cacheHits   int
	cacheMisses int
	now         func() time.Time
}

// NewAIRateLimiter creates a limiter with a shared daily cap and optional
// per-provider caps.
func NewAIRateLimiter(maxTotal int, perProvider map[string]int) *AIRateLimiter {
	limits := make(map[string]int, len(perProvider))
	for name, max := range perProvider {
		limits[strings.ToLower(name)] = max
	}
	rl := &AIRateLimiter{
		counts:   make(map[string]int),
		limits:   limits,
		maxTotal: maxTotal,
		now:      time.Now,
	}
	rl.resetTime = rl.now().Add(24 * time.Hour)
	return rl
}

// CanUse checks whether provider still has budget.
func (rl *AIRateLimiter) CanUse(provider string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	return rl.allowed(strings.ToLower(provider)) == nil
}

// Use records one request for provider, or returns ErrBudgetExceeded.
func (rl *AIRateLimiter) Use(provider string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	provider = strings.ToLower(provider)
	if err := rl.allowed(provider); err != nil {
		logger.Warn("AI rate limit reached", "provider", provider, "error", err)
		return err
	}

	rl.counts[provider]++
	rl.totalCount++
	return nil
}

func (rl *AIRateLimiter) allowed(provider string) error {
	if max := rl.limits[provider]; max > 0 && rl.counts[provider] >= max {
		return fmt.Errorf("%w: %s %d/%d", ErrBudgetExceeded, provider, rl.counts[provider], max)
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("%w: total %d/%d", ErrBudgetExceeded, rl.totalCount, rl.maxTotal)
	}
	return nil
}

// RecordCacheHit counts a request answered from cache instead of the AI.
func (rl *AIRateLimiter) RecordCacheHit() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cacheHits++
}

func (rl *AIRateLimiter) RecordCacheMiss() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cacheMisses++
}

func (rl *AIRateLimiter) GetCacheHitRate() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	total := rl.cacheHits + rl.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(rl.cacheHits) / float64(total) * 100
}

func (rl *AIRateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	perProvider := make(map[string]int, len(rl.counts))
	for k, v := range rl.counts {
		perProvider[k] = v
	}
	return map[string]interface{}{
		"total_requests": rl.totalCount,
		"max_total":      rl.maxTotal,
		"per_provider":   perProvider,
		"cache_hits":     rl.cacheHits,
		"cache_misses":   rl.cacheMisses,
		"reset_time":     rl.resetTime.Format(time.RFC3339),
	}
}

func (rl *AIRateLimiter) checkReset() {
	now := rl.now()
	if now.Before(rl.resetTime) {
		return
	}
	logger.Info("Resetting daily AI rate limits", "total", rl.totalCount)
	rl.counts = make(map[string]int)
	rl.totalCount = 0
	rl.resetTime = now.Add(24 * time.Hour)
}
