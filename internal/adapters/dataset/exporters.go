package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/exportiq/tradescore/internal/domain/model"
)

// ReadExporters loads the exporter-lead dataset consumed by the scoring
// engine. Column names are matched case-insensitively; numeric parse
// failures read as 0 (the lead set is expected pre-cleaned, unlike the raw
// event feed).
func ReadExporters(path string) ([]model.ExporterLead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := idx["exporter_id"]; !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrBadHeader, "exporter_id")
	}

	var leads []model.ExporterLead
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		id := field("exporter_id")
		if id == "" {
			continue
		}
		leads = append(leads, model.ExporterLead{
			ExporterID:          id,
			Industry:            field("industry"),
			State:               field("state"),
			RevenueSizeUSD:      parseFloat(field("revenue_size_usd")),
			IntentScore:         parseFloat(field("intent_score")),
			ShipmentValueUSD:    parseFloat(field("shipment_value_usd")),
			QuantityTons:        parseFloat(field("quantity_tons")),
			PromptResponseScore: parseFloat(field("prompt_response_score")),
			ProfileViews:        parseFloat(field("profile_views")),
			TariffImpact:        parseFloat(field("tariff_impact")),
			WarRisk:             parseFloat(field("war_risk")),
			CurrencyShift:       parseFloat(field("currency_shift")),
		})
	}
	return leads, nil
}
