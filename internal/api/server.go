// Package api exposes the news service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deusflow/newsagent/internal/app"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/deusflow/newsagent/internal/ratelimit"
)

const maxBodyBytes = 1 << 20

// NewsService is the part of *app.Service the API needs.
type NewsService interface {
	GetNews(ctx context.Context, req app.Request) news.Response
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Metrics        *metrics.Metrics
	Limiter        *ratelimit.AIRateLimiter // reported under /metrics when set
}

type server struct {
	svc     NewsService
	metrics *metrics.Metrics
	limiter *ratelimit.AIRateLimiter
}

// NewRouter builds the HTTP handler with all routes and middleware.
func NewRouter(svc NewsService, opts Options) http.Handler {
	if opts.Metrics == nil {
		opts.Metrics = metrics.Global
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	s := &server{svc: svc, metrics: opts.Metrics, limiter: opts.Limiter}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", s.handleTopics)
		r.Get("/time-ranges", s.handleTimeRanges)
		r.Post("/get-news", s.handleGetNews)
	})
	return r
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type newsRequest struct {
	Location  *news.Location `json:"location"`
	Topics    []app.Topic    `json:"topics"`
	TimeRange *app.TimeRange `json:"timeRange"`
}

func (req newsRequest) toApp() app.Request {
	out := app.Request{Location: req.Location}
	for _, t := range req.Topics {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			name = app.TopicName(t.ID)
		}
		if name != "" {
			out.Topics = append(out.Topics, name)
		}
	}
	if req.TimeRange != nil {
		out.TimeRange = strings.TrimSpace(req.TimeRange.Value)
		if out.TimeRange == "" {
			out.TimeRange = strings.TrimSpace(req.TimeRange.ID)
		}
	}
	return out
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "News Agent API is running!"})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.metrics.GetStats()

	status := http.StatusOK
	label := "ok"
	if !s.metrics.Healthy() {
		status = http.StatusServiceUnavailable
		label = "error"
	}

	writeJSON(w, status, map[string]interface{}{
		"status":     label,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	stats := s.metrics.GetStats()
	if s.limiter != nil {
		stats["ai"] = s.limiter.GetStats()
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.Topics())
}

func (s *server) handleTimeRanges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.TimeRanges())
}

func (s *server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req newsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	appReq := req.toApp()
	logger.Info("News request received",
		"request_id", middleware.GetReqID(r.Context()),
		"topics", appReq.Topics,
		"time_range", appReq.TimeRange,
	)

	writeJSON(w, http.StatusOK, s.svc.GetNews(r.Context(), appReq))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Debug("Failed to write response", "error", err)
	}
}
