package analysis

import (
	"context"
	"time"
)

// Storage defines the persistence operations for analysis records.
type Storage interface {
	// Create persists a new record.
	Create(ctx context.Context, record *Record) error
	// History returns all records sorted by creation time, newest first.
	History(ctx context.Context) ([]Record, error)
	// CategoryCounts aggregates total, trailing-24h, and per-vocabulary
	// counts relative to now.
	CategoryCounts(ctx context.Context, now time.Time) (*Counts, error)
}
