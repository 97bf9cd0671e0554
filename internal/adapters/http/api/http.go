// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/pkg/logger"
)

const (
	defaultMaxLimit           = 100
	defaultHighlightThreshold = 80
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Leaderboard(ctx context.Context) (model.Bundle, error)
	TopN(ctx context.Context, n int) ([]model.TopEntry, error)
	Standing(ctx context.Context, id string) (model.Entry, model.Summary, error)
	Summary(ctx context.Context) (model.Summary, error)
	DefaultTopN() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxLimit           int
	highlightThreshold float64
	rateRPS            float64
	rateBurst          int
	logger             logger.Logger

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	summaryHandler     *SummaryHandler
	schemaHandler      *SchemaHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxLimit:           defaultMaxLimit,
		highlightThreshold: defaultHighlightThreshold,
		logger:             logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.maxLimit, s.highlightThreshold)
	s.rankHandler = NewRankHandler(deps, s.highlightThreshold)
	s.summaryHandler = NewSummaryHandler(deps)
	s.schemaHandler = NewSchemaHandler()
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	var limiter *RateLimiter
	if s.rateRPS > 0 {
		limiter = NewRateLimiter(s.rateRPS, s.rateBurst, s.logger)
	}
	wrap := func(h http.HandlerFunc, endpoint string) http.Handler {
		var out http.Handler = MetricsMiddleware(h, endpoint)
		if limiter != nil {
			out = limiter.Handler(endpoint, out)
		}
		return RequestIDMiddleware(out)
	}

	// Specific paths first (most specific to least specific)
	mux.Handle("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.Handle("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/schema", wrap(s.schemaHandler.HandleSchema, "schema"))
	mux.Handle("/summary", wrap(s.summaryHandler.HandleGetSummary, "summary"))
	mux.Handle("/leaderboard/top", wrap(s.leaderboardHandler.HandleGetTop, "leaderboard_top"))
	mux.Handle("/leaderboard", wrap(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.Handle("/rank/", wrap(s.rankHandler.HandleGetRank, "rank"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
