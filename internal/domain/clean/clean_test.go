package clean_test

import (
	"math"
	"testing"
	"time"

	"github.com/exportiq/tradescore/internal/domain/clean"
	"github.com/exportiq/tradescore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func event(id string, d time.Time) model.TradeEvent {
	return model.TradeEvent{
		ID: id, Date: d, Region: "gujarat", EventType: "textiles",
		ImpactLevel: 2, TariffChange: 1, StockShock: 0.5, CurrencyShift: 0.2,
		WarFlag: 0, CalamityFlag: 0,
		ShipmentValueUSD: 100000, ImportVolume: 50,
	}
}

func TestClean(t *testing.T) {
	Convey("Given rows with spreadsheet-mangled identifiers", t, func() {
		rows := []model.TradeEvent{
			event("12345.0", day(1)),
			event(" N#-20! ", day(2)),
			event("###", day(3)),
		}

		out, stats := clean.Clean(rows)

		Convey("Then ids are scrubbed and empty results dropped", func() {
			So(out, ShouldHaveLength, 2)
			So(out[0].ID, ShouldEqual, "12345")
			So(out[1].ID, ShouldEqual, "N-20")
			So(stats.DroppedBadID, ShouldEqual, 1)
		})
	})

	Convey("Given duplicate (id, region, event type) groups", t, func() {
		newer := event("dup", day(10))
		newer.ShipmentValueUSD = 999
		rows := []model.TradeEvent{
			event("dup", day(5)),
			newer,
			event("other", day(1)),
		}

		out, stats := clean.Clean(rows)

		Convey("Then only the latest record of each group survives", func() {
			So(out, ShouldHaveLength, 2)
			So(stats.Deduplicated, ShouldEqual, 1)
			var kept model.TradeEvent
			for _, e := range out {
				if e.ID == "dup" {
					kept = e
				}
			}
			So(kept.Date, ShouldEqual, day(10))
			So(kept.ShipmentValueUSD, ShouldEqual, 999)
		})
	})

	Convey("Given a missing numeric value", t, func() {
		a := event("a", day(1))
		a.TariffChange = 2
		b := event("b", day(2))
		b.TariffChange = 4
		c := event("c", day(3))
		c.TariffChange = math.NaN()

		out, _ := clean.Clean([]model.TradeEvent{a, b, c})

		Convey("Then it is imputed with the column median", func() {
			var repaired model.TradeEvent
			for _, e := range out {
				if e.ID == "c" {
					repaired = e
				}
			}
			So(repaired.TariffChange, ShouldEqual, 3)
		})
	})

	Convey("Given a heavy-tailed column", t, func() {
		rows := make([]model.TradeEvent, 0, 101)
		for i := 0; i <= 100; i++ {
			e := event(idFor(i), day(i))
			e.ShipmentValueUSD = float64(i)
			rows = append(rows, e)
		}

		out, _ := clean.Clean(rows)

		Convey("Then values are clipped to the [p1, p99] bounds", func() {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, e := range out {
				lo = math.Min(lo, e.ShipmentValueUSD)
				hi = math.Max(hi, e.ShipmentValueUSD)
			}
			So(lo, ShouldEqual, 1)
			So(hi, ShouldEqual, 99)
		})
	})

	Convey("Given a constant column", t, func() {
		rows := []model.TradeEvent{event("a", day(1)), event("b", day(2))}

		out, _ := clean.Clean(rows)

		Convey("Then degenerate winsor bounds leave it untouched", func() {
			So(out[0].ShipmentValueUSD, ShouldEqual, 100000)
			So(out[1].ShipmentValueUSD, ShouldEqual, 100000)
		})
	})

	Convey("Given non-binary flag values", t, func() {
		a := event("a", day(1))
		a.WarFlag = 5
		a.CalamityFlag = math.NaN()
		b := event("b", day(2))
		b.WarFlag = -1
		b.CalamityFlag = 0.3

		out, _ := clean.Clean([]model.TradeEvent{a, b})

		Convey("Then flags coerce to strict 0/1", func() {
			byID := map[string]model.TradeEvent{}
			for _, e := range out {
				byID[e.ID] = e
			}
			So(byID["a"].WarFlag, ShouldEqual, 1)
			So(byID["a"].CalamityFlag, ShouldEqual, 0)
			So(byID["b"].WarFlag, ShouldEqual, 0)
			So(byID["b"].CalamityFlag, ShouldEqual, 1)
		})
	})

	Convey("Given a repaired row", t, func() {
		a := event("a", day(1))
		a.ImpactScore = 42 // upstream value, must not be trusted

		out, _ := clean.Clean([]model.TradeEvent{a})

		Convey("Then the impact score is recomputed from its components", func() {
			e := out[0]
			want := e.ImpactLevel + e.TariffChange + e.StockShock +
				e.CurrencyShift + e.WarFlag + e.CalamityFlag
			So(e.ImpactScore, ShouldEqual, want)
		})
	})

	Convey("Given an already-clean table", t, func() {
		rows := make([]model.TradeEvent, 0, 50)
		for i := 0; i < 50; i++ {
			e := event(idFor(i), day(i))
			e.ShipmentValueUSD = float64(1000 * (i + 1))
			e.TariffChange = float64(i%7) - 3
			rows = append(rows, e)
		}
		once, _ := clean.Clean(rows)

		twice, stats := clean.Clean(once)

		Convey("Then cleaning is idempotent", func() {
			So(twice, ShouldResemble, once)
			So(stats.DroppedBadID, ShouldEqual, 0)
			So(stats.Deduplicated, ShouldEqual, 0)
		})
	})
}

func idFor(i int) string {
	return "ev-" + string(rune('a'+i/26)) + string(rune('a'+i%26))
}
