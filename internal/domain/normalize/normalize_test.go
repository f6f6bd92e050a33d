package normalize_test

import (
	"math"
	"testing"
	"time"

	"github.com/exportiq/tradescore/internal/domain/model"
	"github.com/exportiq/tradescore/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizer_Normalize(t *testing.T) {
	Convey("Given a normalizer with the default alias table", t, func() {
		n := normalize.New()

		Convey("When a row uses the upstream column names", func() {
			rows := []map[string]string{{
				"News_ID":            "N-100",
				"Date":               "2024-03-15",
				"Region":             " Maharashtra ",
				"Event_Type":         "Textiles",
				"Impact_Level":       "3.5",
				"Tariff_Change":      "-2.1",
				"StockMarket_Shock":  "0.4",
				"Currency_Shift":     "1.2",
				"War_Flag":           "1",
				"Shipment_Value_USD": "250000",
				"Import_Volume":      "120",
			}}

			events, stats := n.Normalize(rows)

			Convey("Then it maps onto the canonical schema", func() {
				So(events, ShouldHaveLength, 1)
				So(stats.Input, ShouldEqual, 1)
				So(events[0].ID, ShouldEqual, "N-100")
				So(events[0].Date, ShouldEqual, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
				So(events[0].Region, ShouldEqual, "maharashtra")
				So(events[0].EventType, ShouldEqual, "textiles")
				So(events[0].ImpactLevel, ShouldEqual, 3.5)
				So(events[0].TariffChange, ShouldEqual, -2.1)
				So(events[0].ShipmentValueUSD, ShouldEqual, 250000)
			})

			Convey("And absent numeric columns read as NaN for the cleaner", func() {
				So(math.IsNaN(events[0].CalamityFlag), ShouldBeTrue)
			})
		})

		Convey("When the timestamp does not parse under any layout", func() {
			rows := []map[string]string{
				{"news_id": "a", "date": "not-a-date", "region": "gujarat", "event_type": "pharma"},
				{"news_id": "b", "date": "2024-01-02", "region": "gujarat", "event_type": "pharma"},
			}

			events, stats := n.Normalize(rows)

			Convey("Then the bad row is dropped and counted", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].ID, ShouldEqual, "b")
				So(stats.DroppedBadDate, ShouldEqual, 1)
			})
		})

		Convey("When the id column holds an empty value", func() {
			rows := []map[string]string{
				{"news_id": "  ", "date": "2024-01-02", "region": "punjab", "event_type": "agri"},
			}

			events, stats := n.Normalize(rows)

			Convey("Then the row is dropped as missing", func() {
				So(events, ShouldBeEmpty)
				So(stats.DroppedMissing, ShouldEqual, 1)
			})
		})

		Convey("When a categorical value is a known missing literal", func() {
			rows := []map[string]string{
				{"news_id": "c", "date": "2024-01-02", "region": "NaN", "event_type": "null"},
			}

			events, _ := n.Normalize(rows)

			Convey("Then it folds onto the missing token instead of dropping", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].Region, ShouldEqual, model.MissingToken)
				So(events[0].EventType, ShouldEqual, model.MissingToken)
			})
		})

		Convey("When the feed has no region column at all", func() {
			rows := []map[string]string{
				{"news_id": "d", "date": "2024-01-02", "event_type": "chemicals"},
			}

			events, _ := n.Normalize(rows)

			Convey("Then the synthesized default keeps the row alive", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].Region, ShouldEqual, "unknown")
			})
		})

		Convey("When dates arrive in mixed layouts", func() {
			rows := []map[string]string{
				{"news_id": "e1", "date": "2024-02-01T10:30:00Z", "region": "x", "event_type": "y"},
				{"news_id": "e2", "date": "01/31/2024", "region": "x", "event_type": "y"},
				{"news_id": "e3", "date": "2024/02/02", "region": "x", "event_type": "y"},
			}

			events, stats := n.Normalize(rows)

			Convey("Then every layout in the permissive list parses", func() {
				So(events, ShouldHaveLength, 3)
				So(stats.DroppedBadDate, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a normalizer with extra aliases", t, func() {
		n := normalize.New(normalize.WithAliases(map[string]string{
			"Ref_No": normalize.FieldID,
		}))

		Convey("When a row uses the custom column", func() {
			events, _ := n.Normalize([]map[string]string{
				{"Ref_No": "R-1", "date": "2024-01-02", "region": "x", "event_type": "y"},
			})

			Convey("Then it maps through the merged table", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].ID, ShouldEqual, "R-1")
			})
		})
	})
}
