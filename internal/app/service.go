// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/exportiq/tradescore/internal/adapters/dataset"
	"github.com/exportiq/tradescore/internal/config"
	"github.com/exportiq/tradescore/internal/domain/insight"
	"github.com/exportiq/tradescore/internal/domain/match"
	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/internal/domain/scoring"
	"github.com/exportiq/tradescore/pkg/logger"
	"github.com/exportiq/tradescore/pkg/metrics"
)

// Service is the process-wide state: configuration and the scorer artifact
// are loaded once at Start and immutable while serving. Datasets are re-read
// on every request — simple, and acceptable for batch-style low-QPS serving,
// at the cost of repeating pipeline I/O per call.
type Service struct {
	mu sync.RWMutex

	cfg     *config.Config
	scorer  scoring.Scorer
	matcher *match.Matcher
	store   dataset.EventStore

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer injects a scorer, bypassing artifact loading. Used by tests.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// New constructs a Service over the given configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the scorer artifact and opens the canonical dataset store.
// A missing artifact or missing exporter dataset refuses to serve: these
// are startup-fatal, never silently degraded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.scorer == nil {
		switch s.cfg.ScoringStrategy {
		case config.StrategyModel:
			m, err := scoring.LoadModel(s.cfg.ModelPath)
			if err != nil {
				return fmt.Errorf("load scorer artifact: %w", err)
			}
			s.scorer = m
			s.logger.Info(ctx, "loaded scorer artifact", logger.String("path", s.cfg.ModelPath))
		case config.StrategyRule:
			s.scorer = scoring.NewRuleScorer()
			s.logger.Info(ctx, "using rule-based scorer")
		default:
			return fmt.Errorf("unknown scoring strategy %q", s.cfg.ScoringStrategy)
		}
	}

	if _, err := os.Stat(s.cfg.ExportersPath); err != nil {
		return fmt.Errorf("exporter dataset unavailable: %w", err)
	}

	store, err := dataset.NewStore(s.cfg.DatasetDriver, s.eventStorePath())
	if err != nil {
		return fmt.Errorf("open dataset store: %w", err)
	}
	s.store = store

	s.matcher = match.New(
		match.WithTopK(s.cfg.MatchTopK),
		match.WithRiskPenalties(s.cfg.RiskPenalties, s.cfg.DefaultRiskPenalty),
	)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.String("strategy", s.cfg.ScoringStrategy),
		logger.String("dataset_driver", s.cfg.DatasetDriver),
		logger.Int("match_top_k", s.cfg.MatchTopK),
	)
	return nil
}

// Stop releases the dataset store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		_ = s.store.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "service stopped")
}

func (s *Service) eventStorePath() string {
	if s.cfg.DatasetDriver == config.DriverSQLite {
		return s.cfg.SQLitePath
	}
	return s.cfg.EventsPath
}

// scoredLeads performs one private, non-shared read of the exporter dataset
// and scores it. Each request gets a fresh snapshot; two calls may differ if
// the file changed in between.
func (s *Service) scoredLeads(ctx context.Context) ([]model.ScoredLead, error) {
	leads, err := dataset.ReadExporters(s.cfg.ExportersPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, fmt.Errorf("load exporter dataset: %w", err)
	}
	scored, err := s.scorer.ScoreLeads(ctx, leads)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].LeadScore > scored[j].LeadScore
	})
	return scored, nil
}

// ListScoredLeads returns up to limit scored leads, best first. limit <= 0
// returns the whole set.
func (s *Service) ListScoredLeads(ctx context.Context, limit int) ([]model.ScoredLead, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// FilterByIndustry returns scored leads whose industry matches exactly
// after trim + lowercase.
func (s *Service) FilterByIndustry(ctx context.Context, industry string) ([]model.ScoredLead, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return nil, err
	}
	want := fold(industry)
	out := scored[:0]
	for _, l := range scored {
		if fold(l.Industry) == want {
			out = append(out, l)
		}
	}
	return out, nil
}

// FilterByRegion returns scored leads from one state/region.
func (s *Service) FilterByRegion(ctx context.Context, region string) ([]model.ScoredLead, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return nil, err
	}
	want := fold(region)
	out := scored[:0]
	for _, l := range scored {
		if fold(l.State) == want {
			out = append(out, l)
		}
	}
	return out, nil
}

// FeatureImportance exposes the scorer's ranked contribution weights.
func (s *Service) FeatureImportance(_ context.Context) []scoring.FeatureWeight {
	return s.scorer.FeatureImportance()
}

// ExporterDashboard locates one exporter's rank and percentile. found=false
// means the id is unknown — a structured result, not an error.
func (s *Service) ExporterDashboard(ctx context.Context, exporterID string) (insight.Dashboard, bool, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return insight.Dashboard{}, false, err
	}
	d, found := insight.ExporterDashboard(exporterID, scored)
	return d, found, nil
}

// SafeRegions recommends the lowest-risk regions for the exporter's
// industry. found=false means the exporter id is unknown; an empty profile
// list means no event data for that industry.
func (s *Service) SafeRegions(ctx context.Context, exporterID string) ([]model.RegionalRiskProfile, bool, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return nil, false, err
	}
	var industry string
	found := false
	id := strings.TrimSpace(exporterID)
	for i := range scored {
		if scored[i].ExporterID == id {
			industry = scored[i].Industry
			found = true
			break
		}
	}
	if !found {
		return nil, false, nil
	}
	events, err := s.store.LoadEvents(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, true, fmt.Errorf("load event dataset: %w", err)
	}
	return insight.SafeRegions(industry, events), true, nil
}

// MatchLive ranks the scored exporter set against one buyer request.
func (s *Service) MatchLive(ctx context.Context, buyer model.BuyerRequest) ([]model.MatchResult, error) {
	scored, err := s.scoredLeads(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordMatchRequest()
	return s.matcher.Match(buyer, scored), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"scoring_strategy": s.cfg.ScoringStrategy,
		"dataset_driver":   s.cfg.DatasetDriver,
		"match_top_k":      s.cfg.MatchTopK,
	}
}

// fold is the canonical comparison form for industry and region filters.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
