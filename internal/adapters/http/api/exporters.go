// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ExportersHandler serves per-exporter insight endpoints.
type ExportersHandler struct {
	deps Dependencies
}

// NewExportersHandler creates a new exporters handler.
func NewExportersHandler(deps Dependencies) *ExportersHandler {
	return &ExportersHandler{deps: deps}
}

type safeRegionsResponse struct {
	Status  string      `json:"status"`
	Regions []regionDTO `json:"regions"`
}

// HandleExporter dispatches GET /exporters/{id}/dashboard and
// GET /exporters/{id}/safe-regions by hand-parsing the path suffix.
func (h *ExportersHandler) HandleExporter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/exporters/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	exporterID := parts[0]

	switch parts[1] {
	case "dashboard":
		h.handleDashboard(w, r, exporterID)
	case "safe-regions":
		h.handleSafeRegions(w, r, exporterID)
	default:
		http.NotFound(w, r)
	}
}

func (h *ExportersHandler) handleDashboard(w http.ResponseWriter, r *http.Request, exporterID string) {
	d, found, err := h.deps.ExporterDashboard(r.Context(), exporterID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("unknown exporter %q", exporterID))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleSafeRegions distinguishes an unknown exporter (404) from a known
// exporter whose industry has no event data (200 with status no_data).
func (h *ExportersHandler) handleSafeRegions(w http.ResponseWriter, r *http.Request, exporterID string) {
	regions, found, err := h.deps.SafeRegions(r.Context(), exporterID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("unknown exporter %q", exporterID))
		return
	}
	status := "ok"
	if len(regions) == 0 {
		status = "no_data"
	}
	writeJSON(w, http.StatusOK, safeRegionsResponse{Status: status, Regions: toRegionDTOs(regions)})
}
