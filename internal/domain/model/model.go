// Package model contains the canonical domain records shared across the
// pipeline, the scoring engine and the matchmaker.
package model

import "time"

// MissingToken is the sentinel carried by categorical fields whose source
// value was absent or unusable. Cleaned rows never hold an empty region or
// event type; they hold this token.
const MissingToken = "unknown"

// TradeEvent is one canonical trade/news event row.
//
// Numeric fields use NaN to represent a missing value until the cleaner
// imputes it. Derived fields are zero until the feature engine fills them.
type TradeEvent struct {
	ID        string
	Date      time.Time
	Region    string
	EventType string

	// Impact components.
	ImpactLevel   float64
	TariffChange  float64
	StockShock    float64
	CurrencyShift float64
	WarFlag       float64
	CalamityFlag  float64

	// ImpactScore is always recomputed by the cleaner as the sum of the
	// impact components and flags; upstream values are never trusted.
	ImpactScore float64

	ShipmentValueUSD float64
	ImportVolume     float64

	// Derived by the feature engine.
	ImportGrowthPct float64
	Frequency       float64
	PriceAvg        float64
	CountryDemand   float64
}

// ExporterLead is one exporter record with the features the scorer consumes.
type ExporterLead struct {
	ExporterID          string
	Industry            string
	State               string
	RevenueSizeUSD      float64
	IntentScore         float64
	ShipmentValueUSD    float64
	QuantityTons        float64
	PromptResponseScore float64
	ProfileViews        float64
	TariffImpact        float64
	WarRisk             float64
	CurrencyShift       float64
}

// Lead categories with their inclusive lower-bound score thresholds.
const (
	CategoryHigh   = "High Potential"
	CategoryMedium = "Medium Potential"
	CategoryLow    = "Low Potential"

	HighThreshold   = 75.0
	MediumThreshold = 40.0
)

// ScoredLead is an exporter lead with its computed score attached.
// Scores are recomputed on every invocation; nothing here is persisted.
type ScoredLead struct {
	ExporterLead

	LeadScore    float64
	LeadCategory string
	Rationale    []string
}

// BuyerRequest describes one buyer's requirements for a matchmaking call.
// It is transient and never persisted.
type BuyerRequest struct {
	Industry         string
	RequiredQuantity float64
	Budget           float64
	RiskTolerance    string
	IntentScore      float64
}

// MatchResult augments a scored lead with the buyer-fit components.
type MatchResult struct {
	ScoredLead

	QuantityFit     float64
	IntentAlignment float64
	MatchScore      float64
	Rank            int
}

// RegionalRiskProfile is the aggregated risk view of one region.
type RegionalRiskProfile struct {
	Region            string
	RiskScore         float64
	MeanTariffChange  float64
	MeanWarFlag       float64
	MeanCalamityFlag  float64
	MeanCurrencyShift float64
	Events            int
}
