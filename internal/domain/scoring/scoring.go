// Package scoring turns exporter-lead feature vectors into 0-100 lead
// scores, categorical buckets and per-lead rationale.
package scoring

import (
	"context"
	"math"
	"sort"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Canonical feature names a scorer artifact may reference.
const (
	FeatIntent        = "intent_score"
	FeatShipmentValue = "shipment_value_usd"
	FeatQuantity      = "quantity_tons"
	FeatResponse      = "prompt_response_score"
	FeatProfileViews  = "profile_views"
	FeatTariff        = "tariff_impact"
	FeatWarRisk       = "war_risk"
	FeatCurrency      = "currency_shift"
	FeatRevenue       = "revenue_size_usd"
)

// FeatureWeight is one entry of a ranked feature-importance list.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Scorer computes lead scores for a batch of exporter leads.
type Scorer interface {
	// ScoreLeads scores the batch, honoring ctx for cancellation between rows.
	ScoreLeads(ctx context.Context, leads []model.ExporterLead) ([]model.ScoredLead, error)

	// FeatureImportance returns per-feature contribution weights ranked
	// descending by magnitude.
	FeatureImportance() []FeatureWeight
}

// Categorize maps a 0-100 lead score onto its bucket. Boundary values belong
// to the higher category.
func Categorize(score float64) string {
	switch {
	case score >= model.HighThreshold:
		return model.CategoryHigh
	case score >= model.MediumThreshold:
		return model.CategoryMedium
	default:
		return model.CategoryLow
	}
}

// featureValue reads one canonical feature off a lead. Unknown names are
// rejected when an artifact is loaded, so this never silently returns a
// wrong column.
func featureValue(lead *model.ExporterLead, name string) float64 {
	switch name {
	case FeatIntent:
		return lead.IntentScore
	case FeatShipmentValue:
		return lead.ShipmentValueUSD
	case FeatQuantity:
		return lead.QuantityTons
	case FeatResponse:
		return lead.PromptResponseScore
	case FeatProfileViews:
		return lead.ProfileViews
	case FeatTariff:
		return lead.TariffImpact
	case FeatWarRisk:
		return lead.WarRisk
	case FeatCurrency:
		return lead.CurrencyShift
	case FeatRevenue:
		return lead.RevenueSizeUSD
	default:
		return 0
	}
}

func knownFeature(name string) bool {
	switch name {
	case FeatIntent, FeatShipmentValue, FeatQuantity, FeatResponse,
		FeatProfileViews, FeatTariff, FeatWarRisk, FeatCurrency, FeatRevenue:
		return true
	}
	return false
}

// rankedWeights sorts a weight map descending by magnitude.
func rankedWeights(weights map[string]float64) []FeatureWeight {
	out := make([]FeatureWeight, 0, len(weights))
	for f, w := range weights {
		out = append(out, FeatureWeight{Feature: f, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := math.Abs(out[i].Weight), math.Abs(out[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// minMax rescales vals to [0,1]. A constant column maps to all zeros.
func minMax(vals []float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(vals))
	if hi <= lo {
		return out
	}
	for i, v := range vals {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
