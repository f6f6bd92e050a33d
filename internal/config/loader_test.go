package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/exportiq/tradescore/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("TRADESCORE_CONFIG", "")

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.ScoringStrategy, ShouldEqual, config.StrategyModel)
				So(cfg.DatasetDriver, ShouldEqual, config.DriverCSV)
				So(cfg.MatchTopK, ShouldEqual, 5)
				So(cfg.MaxLeadsLimit, ShouldEqual, 100)
				So(cfg.RiskPenalties["medium"], ShouldEqual, 0.10)
			})
		})

		Convey("When environment variables override fields", func() {
			t.Setenv("TRADESCORE_ADDR", ":7070")
			t.Setenv("TRADESCORE_SCORING_STRATEGY", "rule")
			t.Setenv("TRADESCORE_MATCH_TOP_K", "3")

			cfg, err := config.Load(context.Background())

			Convey("Then the env layer wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.ScoringStrategy, ShouldEqual, config.StrategyRule)
				So(cfg.MatchTopK, ShouldEqual, 3)
			})
		})

		Convey("When a YAML file provides values and env overrides one", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":6060\"\nlog_level: debug\n"
			So(os.WriteFile(path, []byte(yaml), 0o644), ShouldBeNil)
			t.Setenv("TRADESCORE_CONFIG", path)
			t.Setenv("TRADESCORE_ADDR", ":6061")

			cfg, err := config.Load(context.Background())

			Convey("Then precedence runs defaults < file < env", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6061")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})

		Convey("When the scoring strategy is invalid", func() {
			t.Setenv("TRADESCORE_SCORING_STRATEGY", "vibes")

			_, err := config.Load(context.Background())

			Convey("Then validation rejects the config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the dataset driver is invalid", func() {
			t.Setenv("TRADESCORE_DATASET_DRIVER", "postgres")

			_, err := config.Load(context.Background())

			Convey("Then validation rejects the config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the config file path points nowhere", func() {
			t.Setenv("TRADESCORE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

			_, err := config.Load(context.Background())

			Convey("Then loading fails with a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
