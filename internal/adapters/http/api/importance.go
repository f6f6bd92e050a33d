// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/exportiq/tradescore/internal/domain/scoring"
)

// ImportanceHandler exposes the scorer's feature contribution ranking.
type ImportanceHandler struct {
	deps Dependencies
}

// NewImportanceHandler creates a new importance handler.
func NewImportanceHandler(deps Dependencies) *ImportanceHandler {
	return &ImportanceHandler{deps: deps}
}

type importanceResponse struct {
	Features []scoring.FeatureWeight `json:"features"`
}

// HandleGetImportance handles GET /importance requests.
func (h *ImportanceHandler) HandleGetImportance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, importanceResponse{Features: h.deps.FeatureImportance(r.Context())})
}
