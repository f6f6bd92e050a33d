package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TRADESCORE_CONFIG is set
//  3. env (prefix TRADESCORE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TRADESCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TRADESCORE_ADDR, TRADESCORE_MODEL_PATH, ...
	// Map env keys like TRADESCORE_MODEL_PATH -> model_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TRADESCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tradescore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ScoringStrategy != StrategyModel && c.ScoringStrategy != StrategyRule:
		return fmt.Errorf("%w: scoring_strategy must be %q or %q", ErrInvalidConfig, StrategyModel, StrategyRule)
	case c.DatasetDriver != DriverCSV && c.DatasetDriver != DriverSQLite:
		return fmt.Errorf("%w: dataset_driver must be %q or %q", ErrInvalidConfig, DriverCSV, DriverSQLite)
	case c.MatchTopK < 1:
		return fmt.Errorf("%w: match_top_k must be positive", ErrInvalidConfig)
	case c.MaxLeadsLimit < 1:
		return fmt.Errorf("%w: max_leads_limit must be positive", ErrInvalidConfig)
	case c.DefaultRiskPenalty < 0 || c.DefaultRiskPenalty >= 1:
		return fmt.Errorf("%w: default_risk_penalty must be in [0,1)", ErrInvalidConfig)
	}
	return nil
}
