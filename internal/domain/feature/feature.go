// Package feature derives per-region time-windowed features and aggregate
// demand metrics over the cleaned trade-event table.
package feature

import (
	"math"
	"sort"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Rolling window spans. Windows are time durations, not row counts: record
// density varies a lot by region.
const (
	frequencyWindow = 365 * 24 * time.Hour
	priceAvgWindow  = 7 * 24 * time.Hour
)

// Enrich returns a copy of events with the derived columns filled in. It
// enforces its own precondition by sorting rows by region, then date.
func Enrich(events []model.TradeEvent) []model.TradeEvent {
	rows := append([]model.TradeEvent(nil), events...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Date.Before(rows[j].Date)
	})

	growth(rows)
	for _, g := range regionGroups(rows) {
		rollingFrequency(g)
		rollingPriceAvg(g)
		countryDemand(g)
	}
	return rows
}

// growth computes the percentage change of shipment value between
// consecutive rows of the full sort order. The first row and any non-finite
// result (division by zero) map to 0.
func growth(rows []model.TradeEvent) {
	for i := range rows {
		if i == 0 {
			rows[i].ImportGrowthPct = 0
			continue
		}
		prev := rows[i-1].ShipmentValueUSD
		pct := (rows[i].ShipmentValueUSD - prev) / prev * 100
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			pct = 0
		}
		rows[i].ImportGrowthPct = pct
	}
}

// regionGroups slices the sorted table into contiguous per-region views.
func regionGroups(rows []model.TradeEvent) [][]model.TradeEvent {
	var groups [][]model.TradeEvent
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Region != rows[start].Region {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}

// rollingFrequency counts, for each row, the region's events inside the
// trailing 365-day window ending at the row's own timestamp (inclusive).
// Two-pointer sweep over the time-ordered group.
func rollingFrequency(g []model.TradeEvent) {
	start := 0
	for i := range g {
		cutoff := g[i].Date.Add(-frequencyWindow)
		for g[start].Date.Before(cutoff) {
			start++
		}
		g[i].Frequency = float64(i - start + 1)
	}
}

// rollingPriceAvg computes the trailing 7-day mean of shipment value per
// region, minimum one observation. A running sum over the window keeps the
// sweep linear.
func rollingPriceAvg(g []model.TradeEvent) {
	start := 0
	sum := 0.0
	for i := range g {
		sum += g[i].ShipmentValueUSD
		cutoff := g[i].Date.Add(-priceAvgWindow)
		for g[start].Date.Before(cutoff) {
			sum -= g[start].ShipmentValueUSD
			start++
		}
		g[i].PriceAvg = sum / float64(i-start+1)
	}
}

// countryDemand broadcasts the region's total import volume onto every row
// of the region. This is the denormalized group total, not a running sum.
func countryDemand(g []model.TradeEvent) {
	total := 0.0
	for i := range g {
		total += g[i].ImportVolume
	}
	for i := range g {
		g[i].CountryDemand = total
	}
}
