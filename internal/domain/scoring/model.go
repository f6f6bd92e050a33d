package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/pkg/metrics"
)

// Artifact is the persisted trained-scorer file: a logistic model with
// per-feature standardization parameters, produced by the offline training
// job. It is opaque to the rest of the system beyond this package.
type Artifact struct {
	Features  []string           `json:"features"`
	Weights   map[string]float64 `json:"weights"`
	Means     map[string]float64 `json:"means"`
	Scales    map[string]float64 `json:"scales"`
	Intercept float64            `json:"intercept"`
	TrainedAt string             `json:"trained_at,omitempty"`
}

// ModelScorer scores leads with a trained probability-estimating artifact.
// Loaded once at process start and treated as immutable thereafter.
type ModelScorer struct {
	artifact Artifact
}

// LoadModel reads and validates a trained-scorer artifact. A missing or
// malformed artifact is fatal at startup: the engine refuses to serve.
func LoadModel(path string) (*ModelScorer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactMissing, err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactInvalid, err)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrArtifactInvalid)
	}
	for _, f := range a.Features {
		if !knownFeature(f) {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrArtifactInvalid, f)
		}
		if _, ok := a.Weights[f]; !ok {
			return nil, fmt.Errorf("%w: feature %q has no weight", ErrArtifactInvalid, f)
		}
	}
	return &ModelScorer{artifact: a}, nil
}

// probability returns the positive-class probability estimate for one lead.
func (s *ModelScorer) probability(lead *model.ExporterLead) float64 {
	z := s.artifact.Intercept
	for _, f := range s.artifact.Features {
		x := featureValue(lead, f)
		if mean, ok := s.artifact.Means[f]; ok {
			x -= mean
		}
		if scale, ok := s.artifact.Scales[f]; ok && scale != 0 {
			x /= scale
		}
		z += s.artifact.Weights[f] * x
	}
	return sigmoid(z)
}

// ScoreLeads maps each lead's conversion probability onto [0,100], buckets
// it, and attaches batch-relative rationale tags.
func (s *ModelScorer) ScoreLeads(ctx context.Context, leads []model.ExporterLead) ([]model.ScoredLead, error) {
	start := time.Now()
	scored := make([]model.ScoredLead, 0, len(leads))
	for i := range leads {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("scoring cancelled: %w", ctx.Err())
		default:
		}
		score := s.probability(&leads[i]) * 100
		scored = append(scored, model.ScoredLead{
			ExporterLead: leads[i],
			LeadScore:    score,
			LeadCategory: Categorize(score),
		})
	}
	attachRationale(scored)
	metrics.RecordScoredLeads(len(scored))
	metrics.RecordScoringDuration(time.Since(start).Seconds())
	return scored, nil
}

// FeatureImportance exposes the artifact's contribution weights, descending
// by magnitude.
func (s *ModelScorer) FeatureImportance() []FeatureWeight {
	return rankedWeights(s.artifact.Weights)
}
