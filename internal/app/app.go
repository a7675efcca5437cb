// Package app wires the pipelines together: feeds, the search agent, or
// both, behind a single GetNews call.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/deusflow/newsagent/internal/agent"
	"github.com/deusflow/newsagent/internal/config"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/deusflow/newsagent/internal/rss"
	"github.com/deusflow/newsagent/internal/sources"
	"github.com/google/uuid"
)

const viaFeeds = "RSS feeds"

// Request is one user query.
type Request struct {
	Location  *news.Location
	Topics    []string // topic display names
	TimeRange string   // short code such as "24h"; empty means no window
}

func (r Request) preferences() agent.Preferences {
	return agent.Preferences{Location: r.Location, Topics: r.Topics, TimeRange: r.TimeRange}
}

type FeedFetcher interface {
	Fetch(ctx context.Context, entries []sources.Entry, perSourceCap int) []rss.Item
}

// Enricher replaces article content with the full page text.
type Enricher interface {
	Enrich(ctx context.Context, articles []news.Article) []news.Article
}

type NewsAgent interface {
	GetNews(ctx context.Context, prefs agent.Preferences) agent.Result
	Rerank(ctx context.Context, articles []news.Article, prefs agent.Preferences) []news.Article
}

type Options struct {
	Pipeline             string // config.PipelineFeeds by default
	Registry             *sources.Registry
	Fetcher              FeedFetcher
	Agent                NewsAgent // required by the agent and hybrid pipelines
	Enricher             Enricher  // nil disables full text enrichment
	Rerank               bool      // re-rank feed results through Agent
	PerSourceCap         int
	FallbackPerSourceCap int
	AgentApplyFilters    bool
	Metrics              *metrics.Metrics
	Now                  func() time.Time
}

type Service struct {
	pipeline     string
	registry     *sources.Registry
	chain        *news.Chain
	fetcher      FeedFetcher
	agent        NewsAgent
	enricher     Enricher
	rerank       bool
	perSource    int
	fallbackCap  int
	applyFilters bool
	metrics      *metrics.Metrics
	now          func() time.Time
}

func New(opts Options) (*Service, error) {
	if opts.Pipeline == "" {
		opts.Pipeline = config.PipelineFeeds
	}
	switch opts.Pipeline {
	case config.PipelineFeeds:
	case config.PipelineAgent, config.PipelineHybrid:
		if opts.Agent == nil {
			return nil, errors.New("agent pipeline requires an agent")
		}
	default:
		return nil, errors.New("unknown pipeline " + opts.Pipeline)
	}
	if opts.Pipeline != config.PipelineAgent && (opts.Registry == nil || opts.Fetcher == nil) {
		return nil, errors.New("feed pipeline requires a registry and a fetcher")
	}
	if opts.PerSourceCap <= 0 {
		opts.PerSourceCap = 3
	}
	if opts.FallbackPerSourceCap <= 0 {
		opts.FallbackPerSourceCap = 5
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Global
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		pipeline:     opts.Pipeline,
		registry:     opts.Registry,
		fetcher:      opts.Fetcher,
		agent:        opts.Agent,
		enricher:     opts.Enricher,
		rerank:       opts.Rerank,
		perSource:    opts.PerSourceCap,
		fallbackCap:  opts.FallbackPerSourceCap,
		applyFilters: opts.AgentApplyFilters,
		metrics:      opts.Metrics,
		now:          opts.Now,
	}
	if opts.Registry != nil {
		s.chain = news.NewChain(opts.Registry)
	} else {
		s.chain = news.NewChainWith(news.TimeFilter{}, news.TopicFilter{})
	}
	return s, nil
}

// Pipeline reports which pipeline answers requests.
func (s *Service) Pipeline() string { return s.pipeline }

// GetNews answers one request. It never fails: upstream problems shrink the
// result and are reflected in the message.
func (s *Service) GetNews(ctx context.Context, req Request) news.Response {
	start := time.Now()
	log := logger.With("run_id", uuid.NewString(), "pipeline", s.pipeline)
	s.metrics.IncrementRequests()

	criteria := s.criteria(req, log)
	log.Info("Processing news request",
		"city", criteria.City(),
		"topics", criteria.Topics,
		"time_range", req.TimeRange,
	)

	var resp news.Response
	switch s.pipeline {
	case config.PipelineAgent:
		resp = s.fromAgent(ctx, req, criteria, log)
	case config.PipelineHybrid:
		resp = s.fromAgent(ctx, req, criteria, log)
		if resp.TotalCount == 0 {
			log.Info("Agent found nothing, falling back to feeds")
			resp = s.fromFeeds(ctx, req, criteria, log)
		}
	default:
		resp = s.fromFeeds(ctx, req, criteria, log)
	}

	elapsed := time.Since(start)
	s.metrics.AddArticlesReturned(resp.TotalCount)
	s.metrics.RecordProcessingTime(elapsed)
	s.metrics.SetLastRun()
	log.Info("News request finished", "articles", resp.TotalCount, "duration", elapsed)
	return resp
}

func (s *Service) criteria(req Request, log *slog.Logger) news.Criteria {
	var window *news.TimeWindow
	if req.TimeRange != "" {
		w, err := news.ParseTimeRange(req.TimeRange, s.now())
		if err != nil {
			log.Warn("Ignoring time range", "time_range", req.TimeRange, "error", err)
		} else {
			window = w
		}
	}
	return news.NewCriteria(req.Location, req.Topics, window)
}

func (s *Service) fromFeeds(ctx context.Context, req Request, criteria news.Criteria, log *slog.Logger) news.Response {
	res := s.registry.Resolve(criteria.City())
	perSource := s.perSource
	if res.Coverage == sources.CoverageFallback {
		perSource = s.fallbackCap
	}
	log.Info("Fetching feeds", "coverage", res.Coverage.String(), "sources", len(res.Sources), "per_source", perSource)

	items := s.fetcher.Fetch(ctx, res.Sources, perSource)
	articles := s.chain.Apply(news.NormalizeAll(items), criteria)
	log.Info("Feed articles filtered", "fetched", len(items), "kept", len(articles))

	if s.enricher != nil && len(articles) > 0 {
		articles = s.enricher.Enrich(ctx, articles)
	}
	if s.rerank && s.agent != nil && len(articles) > 0 {
		articles = s.agent.Rerank(ctx, articles, req.preferences())
	}
	return news.Assemble(articles, viaFeeds)
}

func (s *Service) fromAgent(ctx context.Context, req Request, criteria news.Criteria, log *slog.Logger) news.Response {
	result := s.agent.GetNews(ctx, req.preferences())
	log.Info("Agent answered", "query", result.Query, "articles", len(result.Articles), "cached", result.Cached)

	articles := result.Articles
	if s.applyFilters {
		articles = s.chain.Apply(articles, criteria)
	}

	resp := news.Assemble(articles, result.Via)
	if resp.TotalCount == 0 && result.Message == agent.MessageAIFailed {
		resp.Message = result.Message
	}
	return resp
}
