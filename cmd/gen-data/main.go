// Command gen-data produces fixture datasets for local runs: a deliberately
// messy raw trade-event feed (duplicate ids, spreadsheet-mangled id suffixes,
// mixed date formats, missing numerics), a pre-cleaned exporter-lead file and
// a scorer artifact with hand-picked weights.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	defaultEventRows    = 2000
	defaultExporterRows = 200
)

var regions = []string{"Maharashtra", "Gujarat", "Tamil Nadu", "Punjab", "Karnataka", "West Bengal"}

var industries = []string{"Textiles", "Automotive", "Pharma", "Agriculture", "Electronics", "Chemicals"}

var dateFormats = []string{"2006-01-02", "01/02/2006", "2006-01-02T15:04:05Z07:00"}

func main() {
	var (
		eventsOut    = flag.String("events-out", "data/trade_events_raw.csv", "Raw trade-event feed output path")
		exportersOut = flag.String("exporters-out", "data/exporters.csv", "Exporter-lead dataset output path")
		modelOut     = flag.String("model-out", "data/lead_model.json", "Scorer artifact output path")
		eventRows    = flag.Int("events", defaultEventRows, "Number of raw event rows to generate")
		exporterRows = flag.Int("exporters", defaultExporterRows, "Number of exporter leads to generate")
		seed         = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	for _, out := range []string{*eventsOut, *exportersOut, *modelOut} {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			os.Stderr.WriteString("create output directory: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	if err := writeRawEvents(*eventsOut, *eventRows, rng); err != nil {
		os.Stderr.WriteString("generate events: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := writeExporters(*exportersOut, *exporterRows, rng); err != nil {
		os.Stderr.WriteString("generate exporters: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := writeModel(*modelOut); err != nil {
		os.Stderr.WriteString("generate model: " + err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d rows), %s (%d rows), %s\n",
		*eventsOut, *eventRows, *exportersOut, *exporterRows, *modelOut)
}

func writeRawEvents(path string, rows int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"News_ID", "Date", "Region", "Event_Type",
		"Impact_Level", "Tariff_Change", "StockMarket_Shock", "Currency_Shift",
		"War_Flag", "Natural_Calamity_Flag",
		"Shipment_Value_USD", "Import_Volume",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var prevID string
	for i := 0; i < rows; i++ {
		id := uuid.NewString()
		switch {
		case i%29 == 0 && prevID != "":
			// duplicate of an earlier record, pipeline must dedupe
			id = prevID
		case i%17 == 0:
			// numeric-looking id mangled by a spreadsheet export
			id = strconv.Itoa(100000+i) + ".0"
		}
		prevID = id

		date := start.Add(time.Duration(rng.Intn(500*24)) * time.Hour)
		dateStr := date.Format(dateFormats[rng.Intn(len(dateFormats))])
		if i%113 == 0 {
			dateStr = "not-a-date" // dropped by normalization
		}

		rec := []string{
			id,
			dateStr,
			pick(rng, regions),
			pick(rng, industries),
			maybeMissing(rng, fmt.Sprintf("%.1f", 1+rng.Float64()*4)),
			maybeMissing(rng, fmt.Sprintf("%.2f", rng.NormFloat64()*5)),
			maybeMissing(rng, fmt.Sprintf("%.2f", rng.NormFloat64()*2)),
			maybeMissing(rng, fmt.Sprintf("%.2f", rng.NormFloat64())),
			strconv.Itoa(rng.Intn(2)),
			strconv.Itoa(rng.Intn(2)),
			maybeMissing(rng, fmt.Sprintf("%.0f", 10000+rng.Float64()*990000)),
			maybeMissing(rng, fmt.Sprintf("%.0f", 10+rng.Float64()*4990)),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeExporters(path string, rows int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"exporter_id", "industry", "state", "revenue_size_usd",
		"intent_score", "shipment_value_usd", "quantity_tons",
		"prompt_response_score", "profile_views",
		"tariff_impact", "war_risk", "currency_shift",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		rec := []string{
			fmt.Sprintf("EXP-%04d", i+1),
			pick(rng, industries),
			pick(rng, regions),
			fmt.Sprintf("%.0f", 50000+rng.Float64()*9950000),
			fmt.Sprintf("%.1f", rng.Float64()*100),
			fmt.Sprintf("%.0f", 10000+rng.Float64()*990000),
			fmt.Sprintf("%.0f", 5+rng.Float64()*995),
			fmt.Sprintf("%.1f", rng.Float64()*100),
			fmt.Sprintf("%.0f", rng.Float64()*500),
			fmt.Sprintf("%.2f", rng.NormFloat64()*5),
			fmt.Sprintf("%.0f", float64(rng.Intn(2))),
			fmt.Sprintf("%.2f", rng.NormFloat64()),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeModel emits a logistic artifact with hand-picked weights so local
// runs behave like the trained one: intent and responsiveness dominate,
// risk features pull down.
func writeModel(path string) error {
	artifact := map[string]any{
		"features": []string{
			"intent_score", "shipment_value_usd", "quantity_tons",
			"prompt_response_score", "profile_views",
			"tariff_impact", "war_risk", "currency_shift",
		},
		"weights": map[string]float64{
			"intent_score": 1.2, "shipment_value_usd": 0.8, "quantity_tons": 0.5,
			"prompt_response_score": 0.9, "profile_views": 0.4,
			"tariff_impact": -0.6, "war_risk": -0.7, "currency_shift": -0.3,
		},
		"means": map[string]float64{
			"intent_score": 50, "shipment_value_usd": 500000, "quantity_tons": 500,
			"prompt_response_score": 50, "profile_views": 250,
			"tariff_impact": 0, "war_risk": 0.5, "currency_shift": 0,
		},
		"scales": map[string]float64{
			"intent_score": 29, "shipment_value_usd": 290000, "quantity_tons": 290,
			"prompt_response_score": 29, "profile_views": 145,
			"tariff_impact": 5, "war_risk": 0.5, "currency_shift": 1,
		},
		"intercept":  0.1,
		"trained_at": time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func pick(rng *rand.Rand, vals []string) string {
	return vals[rng.Intn(len(vals))]
}

// maybeMissing blanks out roughly one value in twelve, alternating the
// literal the upstream feeds actually produce.
func maybeMissing(rng *rand.Rand, v string) string {
	if rng.Intn(12) == 0 {
		if rng.Intn(2) == 0 {
			return "NaN"
		}
		return ""
	}
	return v
}
