// Package match ranks scored exporter leads against a buyer's requirements.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Composite blend weights. Lead quality dominates, quantity fit and buyer
// intent split the remainder.
const (
	leadWeight   = 0.5
	fitWeight    = 0.3
	intentWeight = 0.2

	defaultTopK = 5
)

// Default risk-tolerance penalty table. Unrecognized tiers fall back to the
// default penalty rather than rejecting the request.
var defaultPenalties = map[string]float64{
	"low":    0.05,
	"medium": 0.10,
	"high":   0.20,
}

const defaultPenalty = 0.10

// Matcher computes composite buyer↔exporter match scores.
type Matcher struct {
	topK           int
	penalties      map[string]float64
	defaultPenalty float64
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithTopK sets how many matches are returned.
func WithTopK(k int) Option {
	return func(m *Matcher) {
		if k > 0 {
			m.topK = k
		}
	}
}

// WithRiskPenalties replaces the risk-tolerance penalty table. Keys are
// lowercased tier names, values are penalty fractions in [0,1).
func WithRiskPenalties(penalties map[string]float64, fallback float64) Option {
	return func(m *Matcher) {
		if len(penalties) > 0 {
			table := make(map[string]float64, len(penalties))
			for tier, p := range penalties {
				table[strings.ToLower(strings.TrimSpace(tier))] = p
			}
			m.penalties = table
		}
		if fallback >= 0 && fallback < 1 {
			m.defaultPenalty = fallback
		}
	}
}

// New creates a Matcher with the canonical defaults.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		topK:           defaultTopK,
		penalties:      defaultPenalties,
		defaultPenalty: defaultPenalty,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RiskPenalty resolves a buyer's risk-tolerance tier, case-insensitively,
// to its penalty fraction.
func (m *Matcher) RiskPenalty(tier string) float64 {
	if p, ok := m.penalties[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return p
	}
	return m.defaultPenalty
}

// Match filters the scored set to the buyer's industry and returns the
// top-k candidates by composite match score, rank 1 first. An empty
// candidate set yields an empty result, not an error.
//
// Industry matching is exact-normalized (trim + lowercase equality):
// substring matching invites false positives across similarly named
// industries.
func (m *Matcher) Match(buyer model.BuyerRequest, scored []model.ScoredLead) []model.MatchResult {
	industry := normalize(buyer.Industry)
	penalty := m.RiskPenalty(buyer.RiskTolerance)
	intent := buyer.IntentScore / 100

	results := make([]model.MatchResult, 0, len(scored))
	for i := range scored {
		if normalize(scored[i].Industry) != industry {
			continue
		}
		fit := QuantityFit(scored[i].QuantityTons, buyer.RequiredQuantity)
		score := (leadWeight*scored[i].LeadScore +
			fitWeight*fit*100 +
			intentWeight*intent*100) * (1 - penalty)
		results = append(results, model.MatchResult{
			ScoredLead:      scored[i],
			QuantityFit:     fit,
			IntentAlignment: intent,
			MatchScore:      score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > m.topK {
		results = results[:m.topK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// QuantityFit maps the gap between offered and required quantity onto
// (0,1]: 1 at a perfect fit, decaying toward 0 as the gap grows. Never
// negative, never undefined.
func QuantityFit(offered, required float64) float64 {
	return 1 / (1 + math.Abs(offered-required))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
