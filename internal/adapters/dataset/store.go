package dataset

import (
	"context"
	"fmt"

	"github.com/exportiq/tradescore/internal/config"
	"github.com/exportiq/tradescore/internal/domain/model"
)

// EventStore persists and loads the canonical trade-event dataset. The
// pipeline writes through it once per run; the serving layer re-reads it per
// request (no caching).
type EventStore interface {
	SaveEvents(ctx context.Context, events []model.TradeEvent) error
	LoadEvents(ctx context.Context) ([]model.TradeEvent, error)
	Close() error
}

// NewStore selects an EventStore implementation by driver name.
func NewStore(driver, path string) (EventStore, error) {
	switch driver {
	case config.DriverCSV:
		return &csvStore{path: path}, nil
	case config.DriverSQLite:
		return openSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadDriver, driver)
	}
}

// csvStore keeps the canonical dataset in a delimited-text file.
type csvStore struct {
	path string
}

func (s *csvStore) SaveEvents(_ context.Context, events []model.TradeEvent) error {
	return WriteEventsCSV(s.path, events)
}

func (s *csvStore) LoadEvents(_ context.Context) ([]model.TradeEvent, error) {
	return ReadEventsCSV(s.path)
}

func (s *csvStore) Close() error { return nil }
