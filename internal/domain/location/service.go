package location

import (
	"context"
	"time"
)

type Service interface {
	Report(ctx context.Context, req ReportLocationRequest) (Ping, error)
	List(ctx context.Context) ([]Ping, error)

	// Reset deletes every ping. confirm must be true.
	Reset(ctx context.Context, confirm bool) (int64, error)

	// PruneOlderThan removes pings older than maxAge.
	PruneOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}
