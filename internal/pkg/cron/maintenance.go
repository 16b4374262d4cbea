package cron

import (
	"context"
	"log/slog"
	"time"
)

// PingPruner deletes location pings older than a maximum age.
type PingPruner interface {
	PruneOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}

// RevocationPruner forgets logged-out tokens once they expire.
type RevocationPruner interface {
	PruneRevoked(now time.Time) int
}

type MaintenanceJobs struct {
	pings         PingPruner
	revocations   RevocationPruner
	pingRetention time.Duration
}

func NewMaintenanceJobs(pings PingPruner, revocations RevocationPruner, pingRetention time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		pings:         pings,
		revocations:   revocations,
		pingRetention: pingRetention,
	}
}

// RegisterJobs adds the maintenance jobs. Ping pruning is skipped when retention is zero.
func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.pingRetention > 0 {
		scheduler.AddJob("prune_location_pings", pruneInterval(j.pingRetention), j.PruneLocationPings)
	} else {
		slog.Info("Location ping retention disabled")
	}
	scheduler.AddJob("prune_revoked_tokens", 15*time.Minute, j.PruneRevokedTokens)
}

func (j *MaintenanceJobs) PruneLocationPings(ctx context.Context) error {
	_, err := j.pings.PruneOlderThan(ctx, j.pingRetention)
	return err
}

func (j *MaintenanceJobs) PruneRevokedTokens(ctx context.Context) error {
	if n := j.revocations.PruneRevoked(time.Now()); n > 0 {
		slog.Debug("Cron: pruned expired revoked tokens", "count", n)
	}
	return nil
}

// pruneInterval checks a few times per retention period, at most every hour.
func pruneInterval(retention time.Duration) time.Duration {
	interval := retention / 4
	if interval > time.Hour {
		return time.Hour
	}
	if interval < time.Minute {
		return time.Minute
	}
	return interval
}
