// Package normalize maps heterogeneous raw trade-event rows onto the
// canonical event schema.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// Canonical field keys used by the alias table.
const (
	FieldID            = "id"
	FieldDate          = "date"
	FieldRegion        = "region"
	FieldEventType     = "event_type"
	FieldImpactLevel   = "impact_level"
	FieldTariffChange  = "tariff_change"
	FieldStockShock    = "stock_shock"
	FieldCurrencyShift = "currency_shift"
	FieldWarFlag       = "war_flag"
	FieldCalamityFlag  = "natural_calamity_flag"
	FieldShipmentValue = "shipment_value_usd"
	FieldImportVolume  = "import_volume"
)

// absentDefault is injected when a required canonical column has no source
// column at all. Text normalization later folds it to the missing token.
const absentDefault = "Unknown"

// missingLiterals are source values treated as absent in categorical fields.
var missingLiterals = map[string]struct{}{
	"": {}, "nan": {}, "none": {}, "null": {},
}

// dateLayouts tried in order when coercing the timestamp field.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
}

// Stats reports what Normalize did with its input.
type Stats struct {
	Input          int
	DroppedBadDate int
	DroppedMissing int
}

// Normalizer rewrites raw rows into canonical trade events.
type Normalizer struct {
	aliases map[string]string
	layouts []string
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithAliases merges extra source-column aliases into the default table.
// Keys are source column names, values are canonical field keys.
func WithAliases(aliases map[string]string) Option {
	return func(n *Normalizer) {
		for src, canonical := range aliases {
			n.aliases[strings.ToLower(strings.TrimSpace(src))] = canonical
		}
	}
}

// WithDateLayouts replaces the permissive timestamp layout list.
func WithDateLayouts(layouts []string) Option {
	return func(n *Normalizer) {
		if len(layouts) > 0 {
			n.layouts = layouts
		}
	}
}

// New creates a Normalizer with the default alias table.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		aliases: map[string]string{
			"news_id":               FieldID,
			"record_id":             FieldID,
			"id":                    FieldID,
			"date":                  FieldDate,
			"event_date":            FieldDate,
			"timestamp":             FieldDate,
			"region":                FieldRegion,
			"state":                 FieldRegion,
			"country":               FieldRegion,
			"event_type":            FieldEventType,
			"industry":              FieldEventType,
			"category":              FieldEventType,
			"impact_level":          FieldImpactLevel,
			"tariff_change":         FieldTariffChange,
			"tariff_impact":         FieldTariffChange,
			"stockmarket_shock":     FieldStockShock,
			"stock_market_shock":    FieldStockShock,
			"stock_shock":           FieldStockShock,
			"currency_shift":        FieldCurrencyShift,
			"war_flag":              FieldWarFlag,
			"natural_calamity_flag": FieldCalamityFlag,
			"calamity_flag":         FieldCalamityFlag,
			"shipment_value_usd":    FieldShipmentValue,
			"shipment_value":        FieldShipmentValue,
			"import_volume":         FieldImportVolume,
			"quantity_tons":         FieldImportVolume,
			"quantity":              FieldImportVolume,
		},
		layouts: dateLayouts,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize maps raw rows onto canonical trade events. Rows whose timestamp
// fails to parse, or that are missing a required field after coercion, are
// dropped rather than retried.
func (n *Normalizer) Normalize(rows []map[string]string) ([]model.TradeEvent, Stats) {
	stats := Stats{Input: len(rows)}
	events := make([]model.TradeEvent, 0, len(rows))

	for _, row := range rows {
		canonical := n.remap(row)

		id := strings.TrimSpace(canonical[FieldID])
		region := normalizeText(canonical[FieldRegion])
		eventType := normalizeText(canonical[FieldEventType])

		if id == "" || region == "" || eventType == "" {
			stats.DroppedMissing++
			continue
		}

		date, ok := n.parseDate(canonical[FieldDate])
		if !ok {
			stats.DroppedBadDate++
			continue
		}

		events = append(events, model.TradeEvent{
			ID:               id,
			Date:             date,
			Region:           region,
			EventType:        eventType,
			ImpactLevel:      parseNumber(canonical[FieldImpactLevel]),
			TariffChange:     parseNumber(canonical[FieldTariffChange]),
			StockShock:       parseNumber(canonical[FieldStockShock]),
			CurrencyShift:    parseNumber(canonical[FieldCurrencyShift]),
			WarFlag:          parseNumber(canonical[FieldWarFlag]),
			CalamityFlag:     parseNumber(canonical[FieldCalamityFlag]),
			ShipmentValueUSD: parseNumber(canonical[FieldShipmentValue]),
			ImportVolume:     parseNumber(canonical[FieldImportVolume]),
		})
	}

	return events, stats
}

// remap rewrites one raw row into canonical field keys. Required fields with
// no source column are synthesized as the absent default so the row survives.
func (n *Normalizer) remap(row map[string]string) map[string]string {
	canonical := map[string]string{
		FieldID:        absentDefault,
		FieldRegion:    absentDefault,
		FieldEventType: absentDefault,
	}
	for src, val := range row {
		key, ok := n.aliases[strings.ToLower(strings.TrimSpace(src))]
		if !ok {
			continue
		}
		canonical[key] = val
	}
	return canonical
}

// parseDate coerces the timestamp field via the permissive layout list.
func (n *Normalizer) parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range n.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeText trims and lowercases a categorical value, folding the known
// missing literals onto the sentinel token.
func normalizeText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, missing := missingLiterals[s]; missing {
		return model.MissingToken
	}
	return s
}

// parseNumber coerces a numeric field; failures become NaN and are repaired
// downstream by the cleaner.
func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
