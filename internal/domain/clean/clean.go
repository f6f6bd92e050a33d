// Package clean repairs canonical trade events: identifier scrubbing,
// deduplication, imputation, outlier control and flag coercion.
//
// Clean is idempotent: running it over an already-clean table returns the
// same table.
package clean

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Winsorization bounds applied to heavy-tailed numeric columns.
const (
	lowerQuantile = 0.01
	upperQuantile = 0.99
)

var idScrub = regexp.MustCompile(`[^0-9A-Za-z_-]+`)

// column accesses one numeric field of a TradeEvent.
type column struct {
	name string
	get  func(*model.TradeEvent) float64
	set  func(*model.TradeEvent, float64)
}

// numericColumns are imputed with the column median.
var numericColumns = []column{
	{"impact_level", func(e *model.TradeEvent) float64 { return e.ImpactLevel }, func(e *model.TradeEvent, v float64) { e.ImpactLevel = v }},
	{"tariff_change", func(e *model.TradeEvent) float64 { return e.TariffChange }, func(e *model.TradeEvent, v float64) { e.TariffChange = v }},
	{"stock_shock", func(e *model.TradeEvent) float64 { return e.StockShock }, func(e *model.TradeEvent, v float64) { e.StockShock = v }},
	{"currency_shift", func(e *model.TradeEvent) float64 { return e.CurrencyShift }, func(e *model.TradeEvent, v float64) { e.CurrencyShift = v }},
	{"shipment_value_usd", func(e *model.TradeEvent) float64 { return e.ShipmentValueUSD }, func(e *model.TradeEvent, v float64) { e.ShipmentValueUSD = v }},
	{"import_volume", func(e *model.TradeEvent) float64 { return e.ImportVolume }, func(e *model.TradeEvent, v float64) { e.ImportVolume = v }},
}

// winsorColumns are the heavy-tailed measures clipped to [p1, p99].
var winsorColumns = []string{
	"impact_level", "tariff_change", "stock_shock", "currency_shift",
	"shipment_value_usd", "import_volume",
}

// flagColumns are coerced to strict 0/1.
var flagColumns = []column{
	{"war_flag", func(e *model.TradeEvent) float64 { return e.WarFlag }, func(e *model.TradeEvent, v float64) { e.WarFlag = v }},
	{"natural_calamity_flag", func(e *model.TradeEvent) float64 { return e.CalamityFlag }, func(e *model.TradeEvent, v float64) { e.CalamityFlag = v }},
}

// Stats reports what Clean did with its input.
type Stats struct {
	Input        int
	DroppedBadID int
	Deduplicated int
	Output       int
}

// Clean returns the repaired table. The input slice is not modified.
func Clean(events []model.TradeEvent) ([]model.TradeEvent, Stats) {
	stats := Stats{Input: len(events)}

	rows := make([]model.TradeEvent, 0, len(events))
	for _, e := range events {
		id, ok := cleanID(e.ID)
		if !ok {
			stats.DroppedBadID++
			continue
		}
		e.ID = id
		rows = append(rows, e)
	}

	rows = dedupe(rows)
	stats.Deduplicated = stats.Input - stats.DroppedBadID - len(rows)

	imputeNumerics(rows)
	winsorize(rows)
	coerceFlags(rows)
	recomputeImpact(rows)

	stats.Output = len(rows)
	return rows, stats
}

// cleanID strips a trailing ".0" artifact from numeric-looking identifiers,
// removes everything outside [0-9A-Za-z_-], and reports an empty result as
// missing.
func cleanID(raw string) (string, bool) {
	id := strings.TrimSpace(raw)
	id = strings.TrimSuffix(id, ".0")
	id = idScrub.ReplaceAllString(id, "")
	if id == "" {
		return "", false
	}
	return id, true
}

// dedupe keeps, for each (id, region, event type) group, only the record with
// the latest timestamp. Ties keep the row the stable date sort presents last,
// i.e. the later row in insertion order.
func dedupe(rows []model.TradeEvent) []model.TradeEvent {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	type key struct{ id, region, eventType string }
	last := make(map[key]int, len(rows))
	for i, e := range rows {
		last[key{e.ID, e.Region, e.EventType}] = i
	}

	out := rows[:0]
	for i, e := range rows {
		if last[key{e.ID, e.Region, e.EventType}] == i {
			out = append(out, e)
		}
	}
	return out
}

// imputeNumerics replaces missing values with the column median over the
// current cleaned set; an undefined median imputes 0.
func imputeNumerics(rows []model.TradeEvent) {
	for _, col := range numericColumns {
		med := median(collect(rows, col.get))
		if math.IsNaN(med) {
			med = 0
		}
		for i := range rows {
			if math.IsNaN(col.get(&rows[i])) {
				col.set(&rows[i], med)
			}
		}
	}
}

// winsorize clips the designated columns to the [p1, p99] range computed
// over the cleaned set. Degenerate bounds (low >= high) skip the column.
func winsorize(rows []model.TradeEvent) {
	byName := make(map[string]column, len(numericColumns))
	for _, col := range numericColumns {
		byName[col.name] = col
	}
	for _, name := range winsorColumns {
		col := byName[name]
		vals := collect(rows, col.get)
		low := quantile(vals, lowerQuantile)
		high := quantile(vals, upperQuantile)
		if math.IsNaN(low) || math.IsNaN(high) || low >= high {
			continue
		}
		for i := range rows {
			v := col.get(&rows[i])
			if v < low {
				col.set(&rows[i], low)
			} else if v > high {
				col.set(&rows[i], high)
			}
		}
	}
}

// coerceFlags binarizes the flag columns: missing becomes 0, anything
// positive becomes 1.
func coerceFlags(rows []model.TradeEvent) {
	for _, col := range flagColumns {
		for i := range rows {
			v := col.get(&rows[i])
			if math.IsNaN(v) || v <= 0 {
				col.set(&rows[i], 0)
			} else {
				col.set(&rows[i], 1)
			}
		}
	}
}

// recomputeImpact rebuilds the composite impact score from its components.
// Upstream values are never trusted; imputation and clipping may have moved
// the components.
func recomputeImpact(rows []model.TradeEvent) {
	for i := range rows {
		e := &rows[i]
		e.ImpactScore = e.ImpactLevel + e.TariffChange + e.StockShock +
			e.CurrencyShift + e.WarFlag + e.CalamityFlag
	}
}

func collect(rows []model.TradeEvent, get func(*model.TradeEvent) float64) []float64 {
	vals := make([]float64, 0, len(rows))
	for i := range rows {
		if v := get(&rows[i]); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}
