// Package rss downloads and parses the registry's feeds.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/retry"
	"github.com/deusflow/newsagent/internal/sources"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const userAgent = "newsagent/1.0 (+https://github.com/deusflow/newsagent)"

// Item is a raw feed entry tagged with the source it came from.
// Any field may be empty.
type Item struct {
	SourceID  string
	Title     string
	Link      string
	Published string
	Summary   string
}

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	Client      *http.Client
	Timeout     time.Duration // per source, includes retries
	Concurrency int
	Retry       retry.Config
	Metrics     *metrics.Metrics
}

// Fetcher retrieves feeds concurrently. It holds no per-request state and is
// safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	retry       retry.Config
	metrics     *metrics.Metrics
}

func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		client:      opts.Client,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		retry:       opts.Retry,
		metrics:     opts.Metrics,
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.timeout <= 0 {
		f.timeout = 10 * time.Second
	}
	if f.concurrency <= 0 {
		f.concurrency = 8
	}
	if f.metrics == nil {
		f.metrics = metrics.Global
	}
	return f
}

// Fetch pulls up to perSourceCap items from every entry (no cap when
// perSourceCap <= 0). A failing or slow source contributes nothing and never
// aborts the others. The result is ordered by entry order, then feed order,
// regardless of which source answered first.
func (f *Fetcher) Fetch(ctx context.Context, entries []sources.Entry, perSourceCap int) []Item {
	slots := make([][]Item, len(entries))

	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			items, err := f.fetchWithTimeout(ctx, entry)
			f.metrics.RecordFeed(len(items), err)
			if err != nil {
				logger.Warn("Feed fetch failed", "source", entry.ID, "url", entry.URL, "error", err)
				return nil
			}
			if perSourceCap > 0 && len(items) > perSourceCap {
				items = items[:perSourceCap]
			}
			slots[i] = items
			logger.Debug("Feed fetched", "source", entry.ID, "items", len(items))
			return nil
		})
	}
	_ = g.Wait() // goroutines never return an error

	total := 0
	ok := 0
	for _, s := range slots {
		total += len(s)
		if s != nil {
			ok++
		}
	}
	out := make([]Item, 0, total)
	for _, s := range slots {
		out = append(out, s...)
	}

	logger.Info("Processed RSS feeds", "sources", len(entries), "with_items", ok, "items", total)
	return out
}

func (f *Fetcher) fetchWithTimeout(ctx context.Context, entry sources.Entry) ([]Item, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var items []Item
	err := retry.WithRetry(fetchCtx, f.retry, func(ctx context.Context) error {
		var err error
		items, err = f.FetchSource(ctx, entry)
		return err
	})
	return items, err
}

// FetchSource downloads and parses a single feed without capping it.
func (f *Fetcher) FetchSource(ctx context.Context, entry sources.Entry) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		if fi == nil {
			continue
		}
		items = append(items, convertFeedItem(fi, entry.ID))
	}
	return items, nil
}

func convertFeedItem(fi *gofeed.Item, sourceID string) Item {
	published := fi.Published
	if published == "" {
		published = fi.Updated
	}
	summary := fi.Description
	if summary == "" {
		summary = fi.Content
	}
	return Item{
		SourceID:  sourceID,
		Title:     fi.Title,
		Link:      fi.Link,
		Published: published,
		Summary:   summary,
	}
}
