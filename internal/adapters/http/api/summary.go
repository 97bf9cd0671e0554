package api

import (
	"context"
	"net/http"

	"github.com/okian/quizboard/internal/domain/model"
)

// SummaryDependencies defines the interface for summary operations.
type SummaryDependencies interface {
	Summary(ctx context.Context) (model.Summary, error)
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, err := h.deps.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
