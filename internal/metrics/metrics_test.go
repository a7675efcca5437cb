package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordFeed(t *testing.T) {
	m := New()
	m.RecordFeed(3, nil)
	m.RecordFeed(2, nil)
	m.RecordFeed(0, errors.New("timeout"))

	stats := m.GetStats()
	require.Equal(t, int64(2), stats["feeds_fetched"])
	require.Equal(t, int64(1), stats["feeds_failed"])
	require.Equal(t, int64(5), stats["articles_fetched"])
}

func TestProcessingTimeAverage(t *testing.T) {
	m := New()
	m.RecordProcessingTime(100 * time.Millisecond)
	m.RecordProcessingTime(300 * time.Millisecond)

	require.Equal(t, 200*time.Millisecond, m.AverageProcessingTime)
	require.Equal(t, 300*time.Millisecond, m.LastProcessingTime)
}

func TestHealthTransitions(t *testing.T) {
	m := New()
	require.True(t, m.Healthy())

	m.SetError("search down")
	require.False(t, m.Healthy())
	require.Equal(t, "search down", m.GetStats()["last_error"])

	m.SetLastRun()
	require.True(t, m.Healthy())
}

func TestConcurrentCounters(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRequests()
			m.AddArticlesReturned(2)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(50), m.GetStats()["requests_served"])
	require.Equal(t, int64(100), m.GetStats()["articles_returned"])
}
