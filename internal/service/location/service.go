package location

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/metrics"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/sse"
)

// Publisher delivers live events to subscribers of a topic.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type LocationServiceImpl struct {
	repo      location.Repository
	directory personnel.Service
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewLocationService(
	repo location.Repository,
	directory personnel.Service,
	publisher Publisher,
	m *metrics.Metrics,
	now func() time.Time,
) location.Service {
	if now == nil {
		now = time.Now
	}
	return &LocationServiceImpl{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		metrics:   m,
		now:       now,
	}
}

// Report implements location.Service.
func (s *LocationServiceImpl) Report(ctx context.Context, req location.ReportLocationRequest) (location.Ping, error) {
	if err := req.Validate(); err != nil {
		return location.Ping{}, err
	}

	person, err := s.directory.Lookup(ctx, req.PersonalID)
	if err != nil {
		return location.Ping{}, err
	}

	ping, err := s.repo.Upsert(ctx, location.Ping{
		PersonalID:      person.PersonalID,
		ReporterName:    person.FullName,
		CurrentLocation: req.CurrentLocation,
		OnShift:         *req.OnShift,
		ReportedAt:      s.now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		return location.Ping{}, err
	}

	s.metrics.LocationPinged()
	s.publisher.Publish(sse.TopicSupervisors, sse.Event{
		Event: sse.EventLocationUpdated,
		Data:  ping,
	})

	return ping, nil
}

// List implements location.Service.
func (s *LocationServiceImpl) List(ctx context.Context) ([]location.Ping, error) {
	return s.repo.List(ctx)
}

// Reset implements location.Service.
func (s *LocationServiceImpl) Reset(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, location.ErrConfirmationRequired
	}

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	slog.Warn("Location pings reset", "deleted", deleted)
	s.publisher.Publish(sse.TopicSupervisors, sse.Event{
		Event: sse.EventDataReset,
		Data:  map[string]interface{}{"dataset": "location_pings", "deleted": deleted},
	})
	return deleted, nil
}

// PruneOlderThan implements location.Service.
func (s *LocationServiceImpl) PruneOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %s", maxAge)
	}

	cutoff := s.now().Add(-maxAge)
	pruned, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.metrics.PingsPruned(pruned)
	if pruned > 0 {
		slog.Info("Pruned stale location pings", "pruned", pruned, "cutoff", cutoff)
	}
	return pruned, nil
}
