// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/pkg/validate"
)

// MatchHandler handles live buyer matchmaking requests.
type MatchHandler struct {
	deps      Dependencies
	validator *validate.Validator
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies) *MatchHandler {
	return &MatchHandler{deps: deps, validator: validate.New()}
}

type matchRequest struct {
	Industry         string  `json:"industry"          validate:"required"`
	RequiredQuantity float64 `json:"required_quantity" validate:"gte=0"`
	Budget           float64 `json:"budget"            validate:"gte=0"`
	RiskTolerance    string  `json:"risk_tolerance"`
	IntentScore      float64 `json:"intent_score"      validate:"gte=0,lte=100"`
}

type matchResponse struct {
	Status  string     `json:"status"`
	Count   int        `json:"count"`
	Matches []matchDTO `json:"matches"`
}

// HandlePostMatch handles POST /match requests. An empty result is a
// structured response, not an error: no exporter served the requested
// industry.
func (h *MatchHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req matchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_body", fmt.Errorf("%w: %w", ErrBadBody, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", fmt.Errorf("%w: %w", ErrBadBody, err))
		return
	}

	matches, err := h.deps.MatchLive(r.Context(), model.BuyerRequest{
		Industry:         req.Industry,
		RequiredQuantity: req.RequiredQuantity,
		Budget:           req.Budget,
		RiskTolerance:    req.RiskTolerance,
		IntentScore:      req.IntentScore,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	status := "ok"
	if len(matches) == 0 {
		status = "no_exporters_found"
	}
	writeJSON(w, http.StatusOK, matchResponse{Status: status, Count: len(matches), Matches: toMatchDTOs(matches)})
}
