package location

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert replaces any previous ping of the same person.
	Upsert(ctx context.Context, ping Ping) (Ping, error)

	GetByPersonalID(ctx context.Context, personalID string) (Ping, error)

	// List returns every ping, newest first.
	List(ctx context.Context) ([]Ping, error)

	DeleteAll(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
