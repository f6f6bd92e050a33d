// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// LeadsHandler handles scored-lead listing and filtering.
type LeadsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLeadsHandler creates a new leads handler. maxLimit caps the limit query
// parameter; zero or negative disables the cap.
func NewLeadsHandler(deps Dependencies, maxLimit int) *LeadsHandler {
	return &LeadsHandler{deps: deps, maxLimit: maxLimit}
}

type leadsResponse struct {
	Count int       `json:"count"`
	Leads []leadDTO `json:"leads"`
}

// HandleGetLeads handles GET /leads requests. Optional query parameters:
// limit (top-N by score), industry and region (exact match after trim and
// lowercase). Filters are exclusive; industry wins when both are present.
func (h *LeadsHandler) HandleGetLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit, err := h.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_query", err)
		return
	}

	var leads []model.ScoredLead
	switch {
	case r.URL.Query().Get("industry") != "":
		leads, err = h.deps.FilterByIndustry(r.Context(), r.URL.Query().Get("industry"))
	case r.URL.Query().Get("region") != "":
		leads, err = h.deps.FilterByRegion(r.Context(), r.URL.Query().Get("region"))
	default:
		leads, err = h.deps.ListScoredLeads(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if limit > 0 && len(leads) > limit {
		leads = leads[:limit]
	}

	writeJSON(w, http.StatusOK, leadsResponse{Count: len(leads), Leads: toLeadDTOs(leads)})
}

func (h *LeadsHandler) parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: limit=%q", ErrBadQuery, raw)
	}
	if h.maxLimit > 0 && limit > h.maxLimit {
		limit = h.maxLimit
	}
	return limit, nil
}
