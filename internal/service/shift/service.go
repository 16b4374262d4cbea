package shift

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/metrics"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/sse"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

// Publisher delivers live events to subscribers of a topic.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type ShiftServiceImpl struct {
	repo      shift.Repository
	directory personnel.Service
	publisher Publisher
	metrics   *metrics.Metrics
	location  *time.Location
	now       func() time.Time
}

// NewShiftService creates the submission service. loc is the zone used to stamp event
// dates and times.
func NewShiftService(
	repo shift.Repository,
	directory personnel.Service,
	publisher Publisher,
	m *metrics.Metrics,
	loc *time.Location,
	now func() time.Time,
) shift.Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ShiftServiceImpl{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		metrics:   m,
		location:  loc,
		now:       now,
	}
}

// Submit implements shift.Service.
func (s *ShiftServiceImpl) Submit(ctx context.Context, req shift.SubmitReportRequest) (shift.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ReportResponse{}, err
	}

	person, err := s.directory.Lookup(ctx, req.PersonalID)
	if err != nil {
		return shift.ReportResponse{}, err
	}

	if err := s.checkCommander(ctx, req.UnitCommander); err != nil {
		return shift.ReportResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return shift.ReportResponse{}, fmt.Errorf("failed to generate report id: %w", err)
	}

	now := s.now()
	local := now.In(s.location)
	eventDate := shift.DateOnly(local)
	eventTime := shift.ClockTimeOf(local)
	commander := req.UnitCommander

	report := shift.Report{
		ID:            id.String(),
		ReportType:    req.ReportType,
		PersonalID:    person.PersonalID,
		ReporterName:  person.FullName,
		UnitCommander: &commander,
		SpecialNotes:  trimmedOrNil(req.SpecialNotes),
		EventDate:     &eventDate,
		EventTime:     &eventTime,
		RecordedAt:    now.UTC().Truncate(time.Microsecond),
	}

	switch req.ReportType {
	case shift.ReportTypeEntry:
		report.WorkLocation = trimmedOrNil(req.WorkLocation)
		report.HandoverFrom = trimmedOrNil(req.HandoverFrom)
	case shift.ReportTypeExit:
		report.HandoverTo = trimmedOrNil(req.HandoverTo)
		report.ReportsCount = req.ReportsCount
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		return shift.ReportResponse{}, err
	}

	resp := shift.NewReportResponse(created)
	s.metrics.ReportSubmitted(string(created.ReportType))
	s.publisher.Publish(sse.TopicSupervisors, sse.Event{
		Event: sse.EventReportSubmitted,
		Data:  resp,
	})

	slog.Info("Shift report submitted",
		"report_id", created.ID,
		"report_type", created.ReportType,
		"personal_id", created.PersonalID,
	)
	return resp, nil
}

// List implements shift.Service.
func (s *ShiftServiceImpl) List(ctx context.Context, filter shift.ReportFilter) ([]shift.ReportResponse, error) {
	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]shift.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, shift.NewReportResponse(r))
	}
	return out, nil
}

// Reset implements shift.Service.
func (s *ShiftServiceImpl) Reset(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, shift.ErrConfirmationRequired
	}

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	slog.Warn("Shift reports reset", "deleted", deleted)
	s.publisher.Publish(sse.TopicSupervisors, sse.Event{
		Event: sse.EventDataReset,
		Data:  map[string]interface{}{"dataset": "shift_reports", "deleted": deleted},
	})
	return deleted, nil
}

// checkCommander accepts any commander name while the directory lists none.
func (s *ShiftServiceImpl) checkCommander(ctx context.Context, name string) error {
	commanders, err := s.directory.ListCommanders(ctx)
	if err != nil {
		return err
	}
	if len(commanders) == 0 {
		return nil
	}

	names := make([]string, 0, len(commanders))
	for _, c := range commanders {
		names = append(names, c.FullName)
	}
	if !validator.IsInSlice(name, names) {
		return validator.ValidationErrors{{
			Field:   "unit_commander",
			Message: "unit_commander must be one of the listed commanders",
		}}
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
