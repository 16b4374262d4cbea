package shift

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, report Report) (Report, error)

	GetByID(ctx context.Context, id string) (Report, error)

	// List returns reports matching filter ordered by recorded_at ascending.
	List(ctx context.Context, filter ReportFilter) ([]Report, error)

	// ListForWindow returns every entry whose event_date lies in [start, end] together with
	// every exit recorded after the earliest of those entries, ordered by recorded_at.
	// personalID narrows the result to one person when non-nil.
	ListForWindow(ctx context.Context, start, end time.Time, personalID *string) ([]Report, error)

	DeleteAll(ctx context.Context) (int64, error)
}
