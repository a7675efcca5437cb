// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Pipeline modes.
const (
	PipelineFeeds  = "feeds"
	PipelineAgent  = "agent"
	PipelineHybrid = "hybrid"
)

// AI providers.
const (
	ProviderSimple = "simple"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// HTTP settings
	BindAddr       string
	AllowedOrigins []string
	RequestTimeout time.Duration

	// Pipeline selection
	Pipeline string // feeds | agent | hybrid

	// Source registry
	SourcesFile string

	// Feed fetching
	FetchTimeout         time.Duration
	FetchConcurrency     int
	FetchRetryAttempts   int
	FetchRetryDelay      time.Duration
	PerSourceCap         int // general and curated-local requests
	FallbackPerSourceCap int // uncurated locations, fewer feeds so more per feed

	// Full text enrichment of surviving articles
	EnrichFullText    bool
	ScrapeConcurrency int
	ScrapeMaxArticles int

	// AI settings
	AIProvider    string
	AIRerank      bool
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	MaxAIRequests int // per day, 0 = unlimited

	// Search settings
	TavilyAPIKey     string
	SearchEndpoint   string
	SearchMaxResults int

	// Agent pipeline
	AgentCacheTTL     time.Duration
	AgentApplyFilters bool

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		BindAddr:             getEnvOrDefault("BIND_ADDR", "0.0.0.0:8002"),
		AllowedOrigins:       splitAndTrim(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RequestTimeout:       getEnvDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		Pipeline:             strings.ToLower(getEnvOrDefault("PIPELINE", PipelineFeeds)),
		SourcesFile:          os.Getenv("SOURCES_FILE"),
		FetchTimeout:         getEnvDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		FetchConcurrency:     getEnvIntOrDefault("FETCH_CONCURRENCY", 8),
		FetchRetryAttempts:   getEnvIntOrDefault("FETCH_RETRY_ATTEMPTS", 1),
		FetchRetryDelay:      getEnvDurationOrDefault("FETCH_RETRY_DELAY", 500*time.Millisecond),
		PerSourceCap:         getEnvIntOrDefault("PER_SOURCE_CAP", 3),
		FallbackPerSourceCap: getEnvIntOrDefault("FALLBACK_PER_SOURCE_CAP", 5),
		EnrichFullText:       getEnvBoolOrDefault("ENRICH_FULL_TEXT", false),
		ScrapeConcurrency:    getEnvIntOrDefault("SCRAPE_CONCURRENCY", 4),
		ScrapeMaxArticles:    getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", 10),
		AIProvider:           strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderSimple)),
		AIRerank:             getEnvBoolOrDefault("AI_RERANK", false),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		MaxAIRequests:        getEnvIntOrDefault("MAX_AI_REQUESTS", 0),
		TavilyAPIKey:         os.Getenv("TAVILY_API_KEY"),
		SearchEndpoint:       getEnvOrDefault("SEARCH_ENDPOINT", "https://api.tavily.com/search"),
		SearchMaxResults:     getEnvIntOrDefault("SEARCH_MAX_RESULTS", 20),
		AgentCacheTTL:        getEnvDurationOrDefault("AGENT_CACHE_TTL", 15*time.Minute),
		AgentApplyFilters:    getEnvBoolOrDefault("AGENT_APPLY_FILTERS", false),
		Debug:                os.Getenv("DEBUG") == "true",
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.Pipeline {
	case PipelineFeeds, PipelineAgent, PipelineHybrid:
	default:
		return fmt.Errorf("PIPELINE must be one of feeds, agent, hybrid (got %q)", c.Pipeline)
	}
	switch c.AIProvider {
	case ProviderSimple:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be one of simple, gemini, openai (got %q)", c.AIProvider)
	}
	if c.Pipeline != PipelineFeeds && c.TavilyAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is required when PIPELINE=%s", c.Pipeline)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("FETCH_CONCURRENCY must be positive")
	}
	if c.FetchRetryAttempts <= 0 {
		return fmt.Errorf("FETCH_RETRY_ATTEMPTS must be at least 1")
	}
	if c.PerSourceCap <= 0 || c.FallbackPerSourceCap <= 0 {
		return fmt.Errorf("PER_SOURCE_CAP and FALLBACK_PER_SOURCE_CAP must be positive")
	}
	if c.ScrapeConcurrency <= 0 || c.ScrapeMaxArticles < 0 {
		return fmt.Errorf("SCRAPE_CONCURRENCY must be positive and SCRAPE_MAX_ARTICLES non-negative")
	}
	if c.SearchMaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive")
	}
	if c.MaxAIRequests < 0 {
		return fmt.Errorf("MAX_AI_REQUESTS cannot be negative")
	}
	return nil
}
