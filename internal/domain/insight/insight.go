// Package insight provides derived read-only views over scored leads and
// the canonical event dataset.
package insight

import (
	"math"
	"sort"
	"strings"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Regional risk component weights.
const (
	tariffWeight   = 0.35
	warWeight      = 0.30
	calamityWeight = 0.20
	currencyWeight = 0.15

	safeRegionCount = 5
)

// Dashboard is the single-exporter rank/percentile view.
type Dashboard struct {
	ExporterID   string  `json:"exporter_id"`
	Industry     string  `json:"industry"`
	State        string  `json:"state"`
	LeadScore    float64 `json:"lead_score"`
	LeadCategory string  `json:"lead_category"`
	Rank         int     `json:"rank"`
	Total        int     `json:"total"`
	Percentile   float64 `json:"percentile"`
}

// ExporterDashboard locates one exporter in the score-descending ordering.
// Rank is 1-based; percentile is (1 - rank/total)·100 rounded to two
// decimals. An unknown exporter id reports found=false, not an error.
func ExporterDashboard(exporterID string, scored []model.ScoredLead) (Dashboard, bool) {
	ranked := append([]model.ScoredLead(nil), scored...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LeadScore > ranked[j].LeadScore
	})

	id := strings.TrimSpace(exporterID)
	for i := range ranked {
		if ranked[i].ExporterID != id {
			continue
		}
		rank := i + 1
		total := len(ranked)
		pct := (1 - float64(rank)/float64(total)) * 100
		return Dashboard{
			ExporterID:   ranked[i].ExporterID,
			Industry:     ranked[i].Industry,
			State:        ranked[i].State,
			LeadScore:    ranked[i].LeadScore,
			LeadCategory: ranked[i].LeadCategory,
			Rank:         rank,
			Total:        total,
			Percentile:   round2(pct),
		}, true
	}
	return Dashboard{}, false
}

// SafeRegions filters events to one industry (case-insensitive exact match),
// averages a weighted risk score per region, and returns the lowest-risk
// regions ascending. No matching industry yields an empty slice.
func SafeRegions(industry string, events []model.TradeEvent) []model.RegionalRiskProfile {
	want := strings.ToLower(strings.TrimSpace(industry))

	type acc struct {
		risk, tariff, war, calamity, currency float64
		n                                     int
	}
	byRegion := make(map[string]*acc)
	for i := range events {
		e := &events[i]
		if strings.ToLower(e.EventType) != want {
			continue
		}
		a := byRegion[e.Region]
		if a == nil {
			a = &acc{}
			byRegion[e.Region] = a
		}
		a.risk += recordRisk(e)
		a.tariff += e.TariffChange
		a.war += e.WarFlag
		a.calamity += e.CalamityFlag
		a.currency += e.CurrencyShift
		a.n++
	}
	if len(byRegion) == 0 {
		return nil
	}

	profiles := make([]model.RegionalRiskProfile, 0, len(byRegion))
	for region, a := range byRegion {
		n := float64(a.n)
		profiles = append(profiles, model.RegionalRiskProfile{
			Region:            region,
			RiskScore:         a.risk / n,
			MeanTariffChange:  a.tariff / n,
			MeanWarFlag:       a.war / n,
			MeanCalamityFlag:  a.calamity / n,
			MeanCurrencyShift: a.currency / n,
			Events:            a.n,
		})
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].RiskScore != profiles[j].RiskScore {
			return profiles[i].RiskScore < profiles[j].RiskScore
		}
		return profiles[i].Region < profiles[j].Region
	})
	if len(profiles) > safeRegionCount {
		profiles = profiles[:safeRegionCount]
	}
	return profiles
}

// recordRisk is the per-record weighted risk score.
func recordRisk(e *model.TradeEvent) float64 {
	return tariffWeight*math.Abs(e.TariffChange) +
		warWeight*e.WarFlag +
		calamityWeight*e.CalamityFlag +
		currencyWeight*math.Abs(e.CurrencyShift)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
