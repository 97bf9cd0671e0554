package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/quizboard/internal/domain/model"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Standing(ctx context.Context, id string) (model.Entry, model.Summary, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps               RankDependencies
	highlightThreshold float64
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies, highlightThreshold float64) *RankHandler {
	return &RankHandler{deps: deps, highlightThreshold: highlightThreshold}
}

// HandleGetRank handles GET /rank/{id} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/rank/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, sum, err := h.deps.Standing(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryView(entry, sum.Mean, h.highlightThreshold))
}
