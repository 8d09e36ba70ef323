package memory

import (
	"context"
	"sync"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
)

type Config struct {
	L *logger.Logger
}

// DB keeps the reservation list in process memory. Records are copied on
// the way in and out.
type DB struct {
	mu      sync.Mutex
	l       *logger.Logger
	records []*reservation.Record
	saves   int
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{l: conf.L}
}

func (db *DB) Load(_ context.Context) ([]*reservation.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return cloneAll(db.records), nil
}

func (db *DB) Save(ctx context.Context, records []*reservation.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.records = cloneAll(records)
	db.saves++

	db.l.LogDebug("Saved %d reservations in memory", len(records))

	return nil
}

// Saves reports how many times the list has been written.
func (db *DB) Saves() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.saves
}

func cloneAll(records []*reservation.Record) []*reservation.Record {
	out := make([]*reservation.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}

	return out
}
