// Package search queries a Tavily-compatible web search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/retry"
	"golang.org/x/time/rate"
)

const DefaultEndpoint = "https://api.tavily.com/search"

// ErrNoAPIKey is returned when the client has no API key configured.
var ErrNoAPIKey = errors.New("search API key not configured")

// Result is one search hit. Any field may be empty.
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"published_date"`
	Score         float64 `json:"score"`
}

// Searcher is what the agent pipeline needs from a search backend.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	retry    retry.Config
}

// NewTavilyClient creates a client. An empty endpoint means the public API.
func NewTavilyClient(apiKey, endpoint string) *TavilyClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		retry:    retry.Config{MaxAttempts: 3, Delay: time.Second, Backoff: true},
	}
}

// Available returns true if the API key is configured.
func (c *TavilyClient) Available() bool {
	return c.apiKey != ""
}

type tavilyRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains"`
}

type tavilyResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Search runs a basic-depth search. 429 and 5xx answers are retried.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if !c.Available() {
		return nil, ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(tavilyRequest{
		Query:          query,
		SearchDepth:    "basic",
		MaxResults:     maxResults,
		IncludeDomains: []string{},
		ExcludeDomains: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var respBody []byte
	err = retry.WithRetry(ctx, c.retry, func(ctx context.Context) error {
		var doErr error
		respBody, doErr = c.do(ctx, body)
		return doErr
	})
	if err != nil {
		return nil, err
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	logger.Info("Search completed", "query", query, "results", len(parsed.Results))
	return parsed.Results, nil
}

func (c *TavilyClient) do(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(respBody))
	default:
		return nil, retry.Permanent(fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(respBody)))
	}
}
