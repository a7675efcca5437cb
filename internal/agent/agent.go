// Package agent implements the search-driven pipeline: build a query from
// the user's preferences, search the web, and let a Processor shape the hits
// into articles.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/deusflow/newsagent/internal/cache"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/deusflow/newsagent/internal/ratelimit"
	"github.com/deusflow/newsagent/internal/search"
)

const (
	MessageNoResults = "No articles found"
	MessageAIFailed  = "AI processing failed, no articles returned"

	viaSearch = "web search"
	viaAI     = "AI processing"
)

// Result is what one agent run produced.
type Result struct {
	Query    string
	Articles []news.Article
	Message  string
	Via      string // how the articles were shaped, for the response message
	Cached   bool
}

type Options struct {
	MaxResults int
	CacheTTL   time.Duration
	Cache      *cache.Cache[Result]     // nil disables caching
	Limiter    *ratelimit.AIRateLimiter // nil means no budget
	Metrics    *metrics.Metrics
}

type Agent struct {
	searcher   search.Searcher
	processor  Processor
	maxResults int
	cacheTTL   time.Duration
	cache      *cache.Cache[Result]
	limiter    *ratelimit.AIRateLimiter
	metrics    *metrics.Metrics
}

// New creates an Agent. A nil processor means SimpleProcessor.
func New(searcher search.Searcher, processor Processor, opts Options) *Agent {
	if processor == nil {
		processor = SimpleProcessor{}
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 20
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Global
	}
	return &Agent{
		searcher:   searcher,
		processor:  processor,
		maxResults: opts.MaxResults,
		cacheTTL:   opts.CacheTTL,
		cache:      opts.Cache,
		limiter:    opts.Limiter,
		metrics:    opts.Metrics,
	}
}

func (a *Agent) usesAI() bool {
	_, simple := a.processor.(SimpleProcessor)
	return !simple
}

// GetNews runs search and processing. Upstream failures never return an
// error; they produce an empty Result with an explanatory message.
func (a *Agent) GetNews(ctx context.Context, prefs Preferences) Result {
	a.metrics.IncrementAgentRequests()

	query := BuildQuery(prefs)
	log := logger.With("query", query, "processor", a.processor.Name())

	key := cache.GenerateKey(query, a.processor.Name())
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			if a.limiter != nil {
				a.limiter.RecordCacheHit()
			}
			log.Info("Agent result served from cache", "articles", len(cached.Articles))
			cached.Articles = append([]news.Article(nil), cached.Articles...)
			cached.Cached = true
			return cached
		}
		if a.limiter != nil {
			a.limiter.RecordCacheMiss()
		}
	}

	results, err := a.searcher.Search(ctx, query, a.maxResults)
	if err != nil {
		log.Error("Search failed", "error", err)
		a.metrics.SetError("search: " + err.Error())
		return Result{Query: query, Articles: []news.Article{}, Message: MessageNoResults}
	}
	if len(results) == 0 {
		log.Info("No search results found")
		return Result{Query: query, Articles: []news.Article{}, Message: MessageNoResults}
	}

	articles := FromResults(results)
	processed, via, err := a.process(ctx, articles, prefs)
	if err != nil {
		log.Error("AI processing failed", "error", err)
		a.metrics.IncrementAIFailures()
		return Result{Query: query, Articles: []news.Article{}, Message: MessageAIFailed}
	}

	res := Result{
		Query:    query,
		Articles: processed,
		Message:  news.Message(len(processed), via),
		Via:      via,
	}
	if a.cache != nil && len(processed) > 0 {
		stored := res
		stored.Articles = append([]news.Article(nil), processed...)
		a.cache.Set(key, stored, a.cacheTTL)
	}
	log.Info("Agent run finished", "results", len(results), "articles", len(processed))
	return res
}

// process runs the configured processor. When the AI budget is spent it
// falls back to simple formatting.
func (a *Agent) process(ctx context.Context, articles []news.Article, prefs Preferences) ([]news.Article, string, error) {
	if !a.usesAI() {
		out, err := a.processor.Process(ctx, articles, prefs)
		return out, viaSearch, err
	}

	if a.limiter != nil {
		if err := a.limiter.Use(a.processor.Name()); err != nil {
			if errors.Is(err, ratelimit.ErrBudgetExceeded) {
				out, _ := SimpleProcessor{}.Process(ctx, articles, prefs)
				return out, viaSearch, nil
			}
			return nil, "", err
		}
	}

	out, err := a.processor.Process(ctx, articles, prefs)
	if err != nil {
		return nil, "", err
	}
	if out == nil {
		out = []news.Article{}
	}
	return out, viaAI, nil
}

// Rerank lets the AI processor filter and score feed articles. Any failure,
// a spent budget or an empty answer returns the input unchanged.
func (a *Agent) Rerank(ctx context.Context, articles []news.Article, prefs Preferences) []news.Article {
	if !a.usesAI() || len(articles) == 0 {
		return articles
	}
	if a.limiter != nil {
		if err := a.limiter.Use(a.processor.Name()); err != nil {
			logger.Warn("Skipping AI re-rank", "error", err)
			return articles
		}
	}

	out, err := a.processor.Process(ctx, articles, prefs)
	if err != nil {
		logger.Error("AI re-rank failed", "processor", a.processor.Name(), "error", err)
		a.metrics.IncrementAIFailures()
		return articles
	}
	if len(out) == 0 {
		return articles
	}
	return out
}
