package api

import (
	"encoding/json"
	"net/http"

	"github.com/invopop/jsonschema"
)

// SchemaHandler serves the JSON Schema of the leaderboard response.
type SchemaHandler struct {
	schema *jsonschema.Schema
}

// NewSchemaHandler reflects the response schema once.
func NewSchemaHandler() *SchemaHandler {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return &SchemaHandler{schema: reflector.Reflect(&LeaderboardResponse{})}
}

// HandleSchema handles GET /schema requests.
func (h *SchemaHandler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(h.schema)
}
