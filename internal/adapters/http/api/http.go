// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/exportiq/tradescore/internal/domain/insight"
	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListScoredLeads(ctx context.Context, limit int) ([]model.ScoredLead, error)
	FilterByIndustry(ctx context.Context, industry string) ([]model.ScoredLead, error)
	FilterByRegion(ctx context.Context, region string) ([]model.ScoredLead, error)
	FeatureImportance(ctx context.Context) []scoring.FeatureWeight
	ExporterDashboard(ctx context.Context, exporterID string) (insight.Dashboard, bool, error)
	SafeRegions(ctx context.Context, exporterID string) ([]model.RegionalRiskProfile, bool, error)
	MatchLive(ctx context.Context, buyer model.BuyerRequest) ([]model.MatchResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	leadsHandler      *LeadsHandler
	importanceHandler *ImportanceHandler
	exportersHandler  *ExportersHandler
	matchHandler      *MatchHandler
	pageHandler       *pageHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeadsLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		leadsHandler:      NewLeadsHandler(deps, maxLeadsLimit),
		importanceHandler: NewImportanceHandler(deps),
		exportersHandler:  NewExportersHandler(deps),
		matchHandler:      NewMatchHandler(deps),
		pageHandler:       newPageHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.pageHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leads", MetricsMiddleware(s.leadsHandler.HandleGetLeads, "leads"))
	mux.HandleFunc("/importance", MetricsMiddleware(s.importanceHandler.HandleGetImportance, "importance"))
	mux.HandleFunc("/exporters/", MetricsMiddleware(s.exportersHandler.HandleExporter, "exporters"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandlePostMatch, "match"))
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
