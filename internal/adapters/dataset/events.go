package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// eventColumns is the canonical schema plus the derived feature columns, in
// persisted order.
var eventColumns = []string{
	"news_id", "date", "region", "event_type",
	"impact_level", "tariff_change", "stock_shock", "currency_shift",
	"war_flag", "natural_calamity_flag", "impact_score",
	"shipment_value_usd", "import_volume",
	"import_growth_pct", "frequency", "price_avg", "country_demand",
}

const dateLayout = time.RFC3339

// WriteEventsCSV persists the canonical dataset, one row per trade event.
func WriteEventsCSV(path string, events []model.TradeEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(eventColumns); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	for i := range events {
		if err := w.Write(eventRecord(&events[i])); err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// ReadEventsCSV loads a persisted canonical dataset.
func ReadEventsCSV(path string) ([]model.TradeEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range eventColumns[:4] {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadHeader, required)
		}
	}

	var events []model.TradeEvent
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		e, err := parseEventRecord(rec, idx)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func eventRecord(e *model.TradeEvent) []string {
	return []string{
		e.ID,
		e.Date.Format(dateLayout),
		e.Region,
		e.EventType,
		formatFloat(e.ImpactLevel),
		formatFloat(e.TariffChange),
		formatFloat(e.StockShock),
		formatFloat(e.CurrencyShift),
		formatFloat(e.WarFlag),
		formatFloat(e.CalamityFlag),
		formatFloat(e.ImpactScore),
		formatFloat(e.ShipmentValueUSD),
		formatFloat(e.ImportVolume),
		formatFloat(e.ImportGrowthPct),
		formatFloat(e.Frequency),
		formatFloat(e.PriceAvg),
		formatFloat(e.CountryDemand),
	}
}

func parseEventRecord(rec []string, idx map[string]int) (model.TradeEvent, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	date, err := time.Parse(dateLayout, field("date"))
	if err != nil {
		// Tolerate date-only rows written by external tools.
		date, err = time.Parse("2006-01-02", field("date"))
		if err != nil {
			return model.TradeEvent{}, fmt.Errorf("%w: bad date %q", ErrBadRecord, field("date"))
		}
	}
	return model.TradeEvent{
		ID:               field("news_id"),
		Date:             date,
		Region:           field("region"),
		EventType:        field("event_type"),
		ImpactLevel:      parseFloat(field("impact_level")),
		TariffChange:     parseFloat(field("tariff_change")),
		StockShock:       parseFloat(field("stock_shock")),
		CurrencyShift:    parseFloat(field("currency_shift")),
		WarFlag:          parseFloat(field("war_flag")),
		CalamityFlag:     parseFloat(field("natural_calamity_flag")),
		ImpactScore:      parseFloat(field("impact_score")),
		ShipmentValueUSD: parseFloat(field("shipment_value_usd")),
		ImportVolume:     parseFloat(field("import_volume")),
		ImportGrowthPct:  parseFloat(field("import_growth_pct")),
		Frequency:        parseFloat(field("frequency")),
		PriceAvg:         parseFloat(field("price_avg")),
		CountryDemand:    parseFloat(field("country_demand")),
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
