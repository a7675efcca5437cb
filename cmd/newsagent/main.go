package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deusflow/newsagent/internal/agent"
	"github.com/deusflow/newsagent/internal/api"
	"github.com/deusflow/newsagent/internal/app"
	"github.com/deusflow/newsagent/internal/cache"
	"github.com/deusflow/newsagent/internal/config"
	"github.com/deusflow/newsagent/internal/gemini"
	"github.com/deusflow/newsagent/internal/gpt"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/ratelimit"
	"github.com/deusflow/newsagent/internal/retry"
	"github.com/deusflow/newsagent/internal/rss"
	"github.com/deusflow/newsagent/internal/scraper"
	"github.com/deusflow/newsagent/internal/search"
	"github.com/deusflow/newsagent/internal/sources"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()
	logger.Init()

	if err := run(); err != nil {
		logger.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry, err := sources.Load(cfg.SourcesFile)
	if err != nil {
		return err
	}
	logger.Info("Source registry loaded", "feeds", registry.Size(), "cities", len(registry.Cities()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	processor, closeProcessor, err := newProcessor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProcessor()

	var limiter *ratelimit.AIRateLimiter
	if cfg.AIProvider != config.ProviderSimple {
		limiter = ratelimit.NewAIRateLimiter(cfg.MaxAIRequests, nil)
	}

	var newsAgent *agent.Agent
	if cfg.Pipeline != config.PipelineFeeds || cfg.AIRerank {
		resultCache := cache.New[agent.Result](time.Hour)
		defer resultCache.Stop()

		newsAgent = agent.New(search.NewTavilyClient(cfg.TavilyAPIKey, cfg.SearchEndpoint), processor, agent.Options{
			MaxResults: cfg.SearchMaxResults,
			CacheTTL:   cfg.AgentCacheTTL,
			Cache:      resultCache,
			Limiter:    limiter,
		})
	}

	opts := app.Options{
		Pipeline: cfg.Pipeline,
		Registry: registry,
		Fetcher: rss.NewFetcher(rss.Options{
			Timeout:     cfg.FetchTimeout,
			Concurrency: cfg.FetchConcurrency,
			Retry:       retry.Config{MaxAttempts: cfg.FetchRetryAttempts, Delay: cfg.FetchRetryDelay},
		}),
		Rerank:               cfg.AIRerank,
		PerSourceCap:         cfg.PerSourceCap,
		FallbackPerSourceCap: cfg.FallbackPerSourceCap,
		AgentApplyFilters:    cfg.AgentApplyFilters,
	}
	// Assigning a nil *agent.Agent would make a non-nil interface.
	if newsAgent != nil {
		opts.Agent = newsAgent
	}
	if cfg.EnrichFullText {
		opts.Enricher = scraper.New(nil, cfg.ScrapeConcurrency, cfg.ScrapeMaxArticles)
	}

	svc, err := app.New(opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr: cfg.BindAddr,
		Handler: api.NewRouter(svc, api.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
			Metrics:        metrics.Global,
			Limiter:        limiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("News Agent API starting",
			"addr", cfg.BindAddr,
			"pipeline", cfg.Pipeline,
			"ai_provider", cfg.AIProvider,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newProcessor returns the configured article processor and its cleanup.
func newProcessor(ctx context.Context, cfg *config.Config) (agent.Processor, func(), error) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	case config.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, ""), func() {}, nil
	default:
		return agent.SimpleProcessor{}, func() {}, nil
	}
}
