package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/quizboard/internal/domain/model"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context) (model.Bundle, error)
	TopN(ctx context.Context, n int) ([]model.TopEntry, error)
	DefaultTopN() int
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps               LeaderboardDependencies
	maxLimit           int
	highlightThreshold float64
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int, highlightThreshold float64) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:               deps,
		maxLimit:           maxLimit,
		highlightThreshold: highlightThreshold,
	}
}

// HandleGetLeaderboard handles GET /leaderboard requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	bundle, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, newLeaderboardResponse(bundle, h.highlightThreshold))
}

// HandleGetTop handles GET /leaderboard/top?n=N requests. A missing n uses
// the configured top size.
func (h *LeaderboardHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.deps.DefaultTopN()
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: n must be a non-negative integer", ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: n > %d", ErrLimitExceeded, h.maxLimit))
		return
	}
	top, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}
