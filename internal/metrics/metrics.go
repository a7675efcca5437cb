package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	RequestsServed   int64
	FeedsFetched     int64
	FeedsFailed      int64
	ArticlesFetched  int64
	ArticlesReturned int64
	AgentRequests    int64
	AIFailures       int64
	ArticlesEnriched int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

func (m *Metrics) IncrementRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsServed++
}

// RecordFeed counts one feed fetch outcome and the items it contributed.
func (m *Metrics) RecordFeed(items int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.FeedsFailed++
		return
	}
	m.FeedsFetched++
	m.ArticlesFetched += int64(items)
}

func (m *Metrics) AddArticlesReturned(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesReturned += int64(n)
}

func (m *Metrics) IncrementAgentRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AgentRequests++
}

func (m *Metrics) IncrementAIFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIFailures++
}

func (m *Metrics) AddArticlesEnriched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesEnriched += int64(n)
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++
	m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"requests_served":            m.RequestsServed,
		"feeds_fetched":              m.FeedsFetched,
		"feeds_failed":               m.FeedsFailed,
		"articles_fetched":           m.ArticlesFetched,
		"articles_returned":          m.ArticlesReturned,
		"agent_requests":             m.AgentRequests,
		"ai_failures":                m.AIFailures,
		"articles_enriched":          m.ArticlesEnriched,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
