package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/exportiq/tradescore/internal/adapters/dataset"
	"github.com/exportiq/tradescore/internal/config"
	"github.com/exportiq/tradescore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleEvents() []model.TradeEvent {
	return []model.TradeEvent{
		{
			ID: "N-1", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Region: "gujarat", EventType: "textiles",
			ImpactLevel: 3, TariffChange: -1.5, StockShock: 0.25, CurrencyShift: 0.5,
			WarFlag: 1, CalamityFlag: 0, ImpactScore: 3.25,
			ShipmentValueUSD: 120000, ImportVolume: 40,
			ImportGrowthPct: 12.5, Frequency: 3, PriceAvg: 110000, CountryDemand: 90,
		},
		{
			ID: "N-2", Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
			Region: "punjab", EventType: "agriculture",
			ShipmentValueUSD: 80000, ImportVolume: 50,
		},
	}
}

func TestEventsCSV(t *testing.T) {
	Convey("Given a canonical event set", t, func() {
		path := filepath.Join(t.TempDir(), "events.csv")
		events := sampleEvents()

		Convey("When written and read back", func() {
			So(dataset.WriteEventsCSV(path, events), ShouldBeNil)
			got, err := dataset.ReadEventsCSV(path)

			Convey("Then the roundtrip preserves every field", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, events)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := dataset.ReadEventsCSV(filepath.Join(t.TempDir(), "absent.csv"))

			Convey("Then it reports not found", func() {
				So(errors.Is(err, dataset.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a required column is missing", func() {
			So(os.WriteFile(path, []byte("news_id,date\n"), 0o644), ShouldBeNil)
			_, err := dataset.ReadEventsCSV(path)

			Convey("Then it reports a bad header", func() {
				So(errors.Is(err, dataset.ErrBadHeader), ShouldBeTrue)
			})
		})
	})
}

func TestReadRaw(t *testing.T) {
	Convey("Given a ragged raw feed", t, func() {
		path := filepath.Join(t.TempDir(), "raw.csv")
		raw := "News_ID, Date ,Region\n" +
			"a,2024-01-01,gujarat,extra\n" +
			"b,2024-01-02\n"
		So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)

		rows, err := dataset.ReadRaw(path)

		Convey("Then headers are trimmed and rows padded or truncated", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0]["Date"], ShouldEqual, "2024-01-01")
			So(rows[0]["Region"], ShouldEqual, "gujarat")
			So(rows[1]["Region"], ShouldEqual, "")
		})
	})
}

func TestReadExporters(t *testing.T) {
	Convey("Given an exporter-lead file with mixed-case headers", t, func() {
		path := filepath.Join(t.TempDir(), "exporters.csv")
		raw := "Exporter_ID,Industry,State,Intent_Score,Quantity_Tons\n" +
			"E-1,Textiles,Gujarat,82.5,140\n" +
			",Pharma,Punjab,10,10\n"
		So(os.WriteFile(path, []byte(raw), 0o644), ShouldBeNil)

		leads, err := dataset.ReadExporters(path)

		Convey("Then headers match case-insensitively and empty ids are skipped", func() {
			So(err, ShouldBeNil)
			So(leads, ShouldHaveLength, 1)
			So(leads[0].ExporterID, ShouldEqual, "E-1")
			So(leads[0].IntentScore, ShouldEqual, 82.5)
			So(leads[0].QuantityTons, ShouldEqual, 140)
		})
	})

	Convey("Given a file without the exporter_id column", t, func() {
		path := filepath.Join(t.TempDir(), "exporters.csv")
		So(os.WriteFile(path, []byte("name,industry\nfoo,bar\n"), 0o644), ShouldBeNil)

		_, err := dataset.ReadExporters(path)

		Convey("Then it reports a bad header", func() {
			So(errors.Is(err, dataset.ErrBadHeader), ShouldBeTrue)
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Given the csv driver", t, func() {
		path := filepath.Join(t.TempDir(), "events.csv")
		store, err := dataset.NewStore(config.DriverCSV, path)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When saving and loading a snapshot", func() {
			So(store.SaveEvents(context.Background(), sampleEvents()), ShouldBeNil)
			got, err := store.LoadEvents(context.Background())

			Convey("Then the snapshot roundtrips", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, sampleEvents())
			})
		})
	})

	Convey("Given the sqlite driver", t, func() {
		path := filepath.Join(t.TempDir(), "events.sqlite")
		store, err := dataset.NewStore(config.DriverSQLite, path)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When saving twice and loading", func() {
			So(store.SaveEvents(context.Background(), sampleEvents()), ShouldBeNil)
			So(store.SaveEvents(context.Background(), sampleEvents()[:1]), ShouldBeNil)
			got, err := store.LoadEvents(context.Background())

			Convey("Then the second save replaced the snapshot", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ID, ShouldEqual, "N-1")
				So(got[0].ShipmentValueUSD, ShouldEqual, 120000)
			})
		})
	})

	Convey("Given an unknown driver", t, func() {
		_, err := dataset.NewStore("postgres", "dsn")

		Convey("Then it is rejected", func() {
			So(errors.Is(err, dataset.ErrBadDriver), ShouldBeTrue)
		})
	})
}
