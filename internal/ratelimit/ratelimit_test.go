package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnlimitedBudget(t *testing.T) {
	rl := NewAIRateLimiter(0, nil)
	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Use("gemini"))
	}
	require.True(t, rl.CanUse("gemini"))
}

func TestTotalBudget(t *testing.T) {
	rl := NewAIRateLimiter(2, nil)

	require.NoError(t, rl.Use("gemini"))
	require.NoError(t, rl.Use("openai"))
	require.False(t, rl.CanUse("gemini"))
	require.ErrorIs(t, rl.Use("openai"), ErrBudgetExceeded)
	require.Equal(t, 2, rl.GetStats()["total_requests"])
}

func TestPerProviderBudget(t *testing.T) {
	rl := NewAIRateLimiter(0, map[string]int{"Gemini": 1})

	require.NoError(t, rl.Use("gemini"))
	require.ErrorIs(t, rl.Use("GEMINI"), ErrBudgetExceeded)
	require.NoError(t, rl.Use("openai"))
}

func TestDailyReset(t *testing.T) {
	rl := NewAIRateLimiter(1, nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := start
	rl.now = func() time.Time { return current }
	rl.resetTime = start.Add(24 * time.Hour)

	require.NoError(t, rl.Use("openai"))
	require.False(t, rl.CanUse("openai"))

	current = start.Add(25 * time.Hour)
	require.True(t, rl.CanUse("openai"))
	require.NoError(t, rl.Use("openai"))
}

func TestCacheHitRate(t *testing.T) {
	rl := NewAIRateLimiter(0, nil)
	require.Equal(t, 0.0, rl.GetCacheHitRate())

	rl.RecordCacheHit()
	rl.RecordCacheMiss()
	rl.RecordCacheMiss()
	rl.RecordCacheHit()
	require.InDelta(t, 50.0, rl.GetCacheHitRate(), 0.001)
}
