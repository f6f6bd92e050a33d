package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/exportiq/tradescore/internal/domain/model"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS trade_events (
	news_id               TEXT NOT NULL,
	date                  TEXT NOT NULL,
	region                TEXT NOT NULL,
	event_type            TEXT NOT NULL,
	impact_level          REAL NOT NULL,
	tariff_change         REAL NOT NULL,
	stock_shock           REAL NOT NULL,
	currency_shift        REAL NOT NULL,
	war_flag              REAL NOT NULL,
	natural_calamity_flag REAL NOT NULL,
	impact_score          REAL NOT NULL,
	shipment_value_usd    REAL NOT NULL,
	import_volume         REAL NOT NULL,
	import_growth_pct     REAL NOT NULL,
	frequency             REAL NOT NULL,
	price_avg             REAL NOT NULL,
	country_demand        REAL NOT NULL
)`

const insertEvent = `
INSERT INTO trade_events (
	news_id, date, region, event_type,
	impact_level, tariff_change, stock_shock, currency_shift,
	war_flag, natural_calamity_flag, impact_score,
	shipment_value_usd, import_volume,
	import_growth_pct, frequency, price_avg, country_demand
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectEvents = `
SELECT news_id, date, region, event_type,
	impact_level, tariff_change, stock_shock, currency_shift,
	war_flag, natural_calamity_flag, impact_score,
	shipment_value_usd, import_volume,
	import_growth_pct, frequency, price_avg, country_demand
FROM trade_events ORDER BY region, date`

// sqliteStore keeps the canonical dataset in an embedded sqlite database.
type sqliteStore struct {
	db *sql.DB
}

func openSQLiteStore(path string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return &sqliteStore{db: db}, nil
}

// SaveEvents replaces the whole table in one transaction; the canonical
// dataset is a snapshot, not an append log.
func (s *sqliteStore) SaveEvents(ctx context.Context, events []model.TradeEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM trade_events`); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Date.Format(dateLayout), e.Region, e.EventType,
			e.ImpactLevel, e.TariffChange, e.StockShock, e.CurrencyShift,
			e.WarFlag, e.CalamityFlag, e.ImpactScore,
			e.ShipmentValueUSD, e.ImportVolume,
			e.ImportGrowthPct, e.Frequency, e.PriceAvg, e.CountryDemand,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *sqliteStore) LoadEvents(ctx context.Context) ([]model.TradeEvent, error) {
	rows, err := s.db.QueryContext(ctx, selectEvents)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	defer rows.Close()

	var events []model.TradeEvent
	for rows.Next() {
		var e model.TradeEvent
		var date string
		err := rows.Scan(
			&e.ID, &date, &e.Region, &e.EventType,
			&e.ImpactLevel, &e.TariffChange, &e.StockShock, &e.CurrencyShift,
			&e.WarFlag, &e.CalamityFlag, &e.ImpactScore,
			&e.ShipmentValueUSD, &e.ImportVolume,
			&e.ImportGrowthPct, &e.Frequency, &e.PriceAvg, &e.CountryDemand,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		e.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrBadRecord, date)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	return events, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
