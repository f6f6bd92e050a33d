package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/pkg/metrics"
)

// Default rule-based weights. Positive features pull the score up, risk
// features pull it down; both groups are min-max normalized independently
// before weighting.
var (
	defaultPositiveWeights = map[string]float64{
		FeatIntent:        0.30,
		FeatShipmentValue: 0.25,
		FeatQuantity:      0.15,
		FeatResponse:      0.15,
		FeatProfileViews:  0.15,
	}
	defaultRiskWeights = map[string]float64{
		FeatTariff:   0.20,
		FeatWarRisk:  0.10,
		FeatCurrency: 0.10,
	}
)

// RuleScorer implements Scorer with a deterministic weighted formula. It
// needs no trained artifact, produces no rationale tags, and reports its
// static weights as feature importance.
type RuleScorer struct {
	positive map[string]float64
	risk     map[string]float64
}

// RuleOption applies a configuration option to the RuleScorer.
type RuleOption func(*RuleScorer)

// WithPositiveWeights replaces the positive-feature weight table.
func WithPositiveWeights(weights map[string]float64) RuleOption {
	return func(s *RuleScorer) {
		if len(weights) > 0 {
			s.positive = weights
		}
	}
}

// WithRiskWeights replaces the risk-feature weight table.
func WithRiskWeights(weights map[string]float64) RuleOption {
	return func(s *RuleScorer) {
		if len(weights) > 0 {
			s.risk = weights
		}
	}
}

// NewRuleScorer creates a rule-based scorer with the default weight tables.
func NewRuleScorer(opts ...RuleOption) *RuleScorer {
	s := &RuleScorer{
		positive: defaultPositiveWeights,
		risk:     defaultRiskWeights,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreLeads normalizes each feature group to [0,1] over the batch, blends
// them with the weight tables, and min-max rescales the raw result to
// [0,100]. The rescale is a monotonic mapping of the raw formula output.
func (s *RuleScorer) ScoreLeads(ctx context.Context, leads []model.ExporterLead) ([]model.ScoredLead, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring cancelled: %w", err)
	}

	raw := make([]float64, len(leads))
	for name, weight := range s.positive {
		scaled := minMax(columnOf(leads, name))
		for i := range raw {
			raw[i] += weight * scaled[i]
		}
	}
	for name, weight := range s.risk {
		scaled := minMax(columnOf(leads, name))
		for i := range raw {
			raw[i] -= weight * scaled[i]
		}
	}

	final := minMax(raw)
	scored := make([]model.ScoredLead, 0, len(leads))
	for i := range leads {
		score := final[i] * 100
		scored = append(scored, model.ScoredLead{
			ExporterLead: leads[i],
			LeadScore:    score,
			LeadCategory: Categorize(score),
		})
	}
	metrics.RecordScoredLeads(len(scored))
	metrics.RecordScoringDuration(time.Since(start).Seconds())
	return scored, nil
}

// FeatureImportance returns the static weights, risk weights negated,
// descending by magnitude.
func (s *RuleScorer) FeatureImportance() []FeatureWeight {
	all := make(map[string]float64, len(s.positive)+len(s.risk))
	for f, w := range s.positive {
		all[f] = w
	}
	for f, w := range s.risk {
		all[f] = -w
	}
	return rankedWeights(all)
}

func columnOf(leads []model.ExporterLead, name string) []float64 {
	vals := make([]float64, len(leads))
	for i := range leads {
		vals[i] = featureValue(&leads[i], name)
	}
	return vals
}
