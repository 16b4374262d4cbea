package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePingPruner struct {
	calls  int
	maxAge time.Duration
	err    error
}

func (f *fakePingPruner) PruneOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	f.calls++
	f.maxAge = maxAge
	return 2, f.err
}

type fakeRevocationPruner struct {
	calls int
}

func (f *fakeRevocationPruner) PruneRevoked(now time.Time) int {
	f.calls++
	return 1
}

func TestScheduler_RunsJobImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	started := make(chan struct{}, 1)

	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		return nil
	})
	s.AddJob("ignored", 0, func(ctx context.Context) error { return nil })
	assert.Equal(t, []string{"tick"}, s.JobNames())

	s.Start()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestMaintenanceJobs_Register(t *testing.T) {
	pings := &fakePingPruner{}
	tokens := &fakeRevocationPruner{}

	s := NewScheduler(context.Background())
	NewMaintenanceJobs(pings, tokens, 24*time.Hour).RegisterJobs(s)
	assert.Equal(t, []string{"prune_location_pings", "prune_revoked_tokens"}, s.JobNames())

	s.RunOnce(context.Background())
	assert.Equal(t, 1, pings.calls)
	assert.Equal(t, 24*time.Hour, pings.maxAge)
	assert.Equal(t, 1, tokens.calls)
}

func TestMaintenanceJobs_RetentionDisabled(t *testing.T) {
	s := NewScheduler(context.Background())
	NewMaintenanceJobs(&fakePingPruner{}, &fakeRevocationPruner{}, 0).RegisterJobs(s)

	assert.Equal(t, []string{"prune_revoked_tokens"}, s.JobNames())
}

func TestMaintenanceJobs_PruneError(t *testing.T) {
	pings := &fakePingPruner{err: errors.New("db down")}
	jobs := NewMaintenanceJobs(pings, &fakeRevocationPruner{}, time.Hour)

	require.EqualError(t, jobs.PruneLocationPings(context.Background()), "db down")
}

func TestPruneInterval(t *testing.T) {
	assert.Equal(t, time.Hour, pruneInterval(24*time.Hour))
	assert.Equal(t, 15*time.Minute, pruneInterval(time.Hour))
	assert.Equal(t, time.Minute, pruneInterval(time.Minute))
}
