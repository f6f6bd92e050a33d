// Package api declares HTTP contracts and route registration helpers.
package api

import "github.com/exportiq/tradescore/internal/domain/model"

// leadDTO is the wire shape of one scored exporter lead.
type leadDTO struct {
	ExporterID          string   `json:"exporter_id"`
	Industry            string   `json:"industry"`
	State               string   `json:"state"`
	RevenueSizeUSD      float64  `json:"revenue_size_usd"`
	IntentScore         float64  `json:"intent_score"`
	ShipmentValueUSD    float64  `json:"shipment_value_usd"`
	QuantityTons        float64  `json:"quantity_tons"`
	PromptResponseScore float64  `json:"prompt_response_score"`
	ProfileViews        float64  `json:"profile_views"`
	LeadScore           float64  `json:"lead_score"`
	LeadCategory        string   `json:"lead_category"`
	Rationale           []string `json:"rationale"`
}

// matchDTO is the wire shape of one ranked buyer match.
type matchDTO struct {
	leadDTO

	QuantityFit     float64 `json:"quantity_fit"`
	IntentAlignment float64 `json:"intent_alignment"`
	MatchScore      float64 `json:"match_score"`
	Rank            int     `json:"rank"`
}

// regionDTO is the wire shape of one regional risk profile.
type regionDTO struct {
	Region            string  `json:"region"`
	RiskScore         float64 `json:"risk_score"`
	MeanTariffChange  float64 `json:"mean_tariff_change"`
	MeanWarFlag       float64 `json:"mean_war_flag"`
	MeanCalamityFlag  float64 `json:"mean_calamity_flag"`
	MeanCurrencyShift float64 `json:"mean_currency_shift"`
	Events            int     `json:"events"`
}

func toLeadDTO(l model.ScoredLead) leadDTO {
	rationale := l.Rationale
	if rationale == nil {
		rationale = []string{}
	}
	return leadDTO{
		ExporterID:          l.ExporterID,
		Industry:            l.Industry,
		State:               l.State,
		RevenueSizeUSD:      l.RevenueSizeUSD,
		IntentScore:         l.IntentScore,
		ShipmentValueUSD:    l.ShipmentValueUSD,
		QuantityTons:        l.QuantityTons,
		PromptResponseScore: l.PromptResponseScore,
		ProfileViews:        l.ProfileViews,
		LeadScore:           l.LeadScore,
		LeadCategory:        l.LeadCategory,
		Rationale:           rationale,
	}
}

func toLeadDTOs(leads []model.ScoredLead) []leadDTO {
	out := make([]leadDTO, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadDTO(l))
	}
	return out
}

func toMatchDTOs(matches []model.MatchResult) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchDTO{
			leadDTO:         toLeadDTO(m.ScoredLead),
			QuantityFit:     m.QuantityFit,
			IntentAlignment: m.IntentAlignment,
			MatchScore:      m.MatchScore,
			Rank:            m.Rank,
		})
	}
	return out
}

func toRegionDTOs(regions []model.RegionalRiskProfile) []regionDTO {
	out := make([]regionDTO, 0, len(regions))
	for _, r := range regions {
		out = append(out, regionDTO{
			Region:            r.Region,
			RiskScore:         r.RiskScore,
			MeanTariffChange:  r.MeanTariffChange,
			MeanWarFlag:       r.MeanWarFlag,
			MeanCalamityFlag:  r.MeanCalamityFlag,
			MeanCurrencyShift: r.MeanCurrencyShift,
			Events:            r.Events,
		})
	}
	return out
}
