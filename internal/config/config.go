// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

// Scoring strategy names accepted by the scoring engine.
const (
	StrategyModel = "model"
	StrategyRule  = "rule"
)

// Dataset driver names accepted by the dataset adapter.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RawEventsPath is the raw trade-event feed consumed by the pipeline.
	RawEventsPath string `koanf:"raw_events_path"`

	// EventsPath is the persisted canonical trade-event dataset.
	EventsPath string `koanf:"events_path"`

	// ExportersPath is the exporter-lead dataset consumed by the scoring engine.
	ExportersPath string `koanf:"exporters_path"`

	// ModelPath is the trained scorer artifact (JSON). Required when
	// ScoringStrategy is "model".
	ModelPath string `koanf:"model_path"`

	// ScoringStrategy selects "model" or "rule" scoring.
	ScoringStrategy string `koanf:"scoring_strategy"`

	// DatasetDriver selects "csv" or "sqlite" for the canonical dataset.
	DatasetDriver string `koanf:"dataset_driver"`

	// SQLitePath is the canonical dataset location for the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// MatchTopK is the number of matches returned by the matchmaker.
	MatchTopK int `koanf:"match_top_k"`

	// MaxLeadsLimit caps GET /leads?limit.
	MaxLeadsLimit int `koanf:"max_leads_limit"`

	// RiskPenalties maps buyer risk-tolerance tiers to penalty fractions.
	RiskPenalties map[string]float64 `koanf:"risk_penalties"`

	// DefaultRiskPenalty applies to unrecognized risk-tolerance tiers.
	DefaultRiskPenalty float64 `koanf:"default_risk_penalty"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		RawEventsPath:   "data/trade_events_raw.csv",
		EventsPath:      "data/trade_events.csv",
		ExportersPath:   "data/exporters.csv",
		ModelPath:       "data/lead_model.json",
		ScoringStrategy: StrategyModel,
		DatasetDriver:   DriverCSV,
		SQLitePath:      "data/trade_events.sqlite",
		MatchTopK:       5,
		MaxLeadsLimit:   100,
		RiskPenalties: map[string]float64{
			"low":    0.05,
			"medium": 0.10,
			"high":   0.20,
		},
		DefaultRiskPenalty: 0.10,
	}
}
