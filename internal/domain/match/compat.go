package match

import (
	"sort"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// BuyerProfile is one candidate buyer in the simpler exporter-vs-buyer-list
// policy, used where quantity and intent signals are unavailable.
type BuyerProfile struct {
	Name        string
	Industry    string
	RiskLevel   string
	TradeVolume float64
	// SuccessRate is a caller-supplied historical-success addend.
	SuccessRate float64
}

// BuyerMatch is a buyer profile with its compatibility score attached.
type BuyerMatch struct {
	BuyerProfile
	MatchScore float64
}

// Point values for the compatibility policy.
const (
	industryPoints = 30

	riskLowPoints    = 20
	riskMediumPoints = 10

	volumeNearGap  = 100_000
	volumeFarGap   = 300_000
	volumeNear     = 20
	volumeFar      = 10
	leadScoreHiBar = 85
	leadScoreHi    = 15
	leadScoreLoBar = 70
	leadScoreLo    = 8

	maxCompatScore = 100
)

// CompatibilityScore sums independently weighted sub-scores for one
// exporter/buyer pair, capped at 100. The exporter's shipment value stands
// in for its trade volume.
func CompatibilityScore(exporter model.ScoredLead, buyer BuyerProfile) float64 {
	score := 0.0

	if normalize(exporter.Industry) == normalize(buyer.Industry) {
		score += industryPoints
	}

	switch normalize(buyer.RiskLevel) {
	case "low":
		score += riskLowPoints
	case "medium":
		score += riskMediumPoints
	}

	gap := exporter.ShipmentValueUSD - buyer.TradeVolume
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap < volumeNearGap:
		score += volumeNear
	case gap < volumeFarGap:
		score += volumeFar
	}

	switch {
	case exporter.LeadScore > leadScoreHiBar:
		score += leadScoreHi
	case exporter.LeadScore > leadScoreLoBar:
		score += leadScoreLo
	}

	score += buyer.SuccessRate
	if score > maxCompatScore {
		score = maxCompatScore
	}
	return score
}

// GenerateMatches scores every buyer against the exporter and returns them
// sorted by descending compatibility.
func GenerateMatches(exporter model.ScoredLead, buyers []BuyerProfile) []BuyerMatch {
	out := make([]BuyerMatch, 0, len(buyers))
	for _, b := range buyers {
		out = append(out, BuyerMatch{
			BuyerProfile: b,
			MatchScore:   CompatibilityScore(exporter, b),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}
