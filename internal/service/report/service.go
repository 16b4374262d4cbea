package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/domain/report"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	shiftService "github.com/shift-report/shift-report-backend-go/internal/service/shift"
)

type ReportServiceImpl struct {
	shiftRepo    shift.Repository
	locationRepo location.Repository
	directory    personnel.Service
	calculator   *shiftService.HoursCalculator
	location     *time.Location
	now          func() time.Time
}

// NewReportService creates the supervisor reporting service. loc decides which calendar
// week "now" falls in.
func NewReportService(
	shiftRepo shift.Repository,
	locationRepo location.Repository,
	directory personnel.Service,
	calculator *shiftService.HoursCalculator,
	loc *time.Location,
	now func() time.Time,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		shiftRepo:    shiftRepo,
		locationRepo: locationRepo,
		directory:    directory,
		calculator:   calculator,
		location:     loc,
		now:          now,
	}
}

// WeeklyHours implements report.ReportService.
func (s *ReportServiceImpl) WeeklyHours(ctx context.Context, req report.WeekRequest) (report.WeeklyHoursReport, error) {
	window, err := req.Resolve(s.now(), s.location)
	if err != nil {
		return report.WeeklyHoursReport{}, err
	}

	events, err := s.shiftRepo.ListForWindow(ctx, window.Start, window.End, nil)
	if err != nil {
		return report.WeeklyHoursReport{}, fmt.Errorf("failed to load shift reports: %w", err)
	}

	rows := s.calculator.SummarizeWeek(events, window.Start, window.End)

	result := report.WeeklyHoursReport{
		WeekStart:       window.Start.Format(shift.DateLayout),
		WeekEnd:         window.End.Format(shift.DateLayout),
		ActivePersonnel: len(rows),
		Rows:            rows,
	}

	var total float64
	for _, row := range rows {
		total += row.TotalHours
		result.TotalShifts += row.TotalShifts
		result.FlaggedShifts += row.FlaggedShifts
	}
	result.TotalHours = round2(total)

	return result, nil
}

// PersonDailyDetail implements report.ReportService.
func (s *ReportServiceImpl) PersonDailyDetail(ctx context.Context, personalID string, req report.WeekRequest) (report.PersonDetailReport, error) {
	window, err := req.Resolve(s.now(), s.location)
	if err != nil {
		return report.PersonDetailReport{}, err
	}

	events, err := s.shiftRepo.ListForWindow(ctx, window.Start, window.End, &personalID)
	if err != nil {
		return report.PersonDetailReport{}, fmt.Errorf("failed to load shift reports: %w", err)
	}

	rows := s.calculator.DailyDetail(events, personalID, window.Start, window.End)

	name, err := s.displayName(ctx, personalID, events)
	if err != nil {
		return report.PersonDetailReport{}, err
	}

	return report.PersonDetailReport{
		PersonalID: personalID,
		FullName:   name,
		WeekStart:  window.Start.Format(shift.DateLayout),
		WeekEnd:    window.End.Format(shift.DateLayout),
		Rows:       rows,
	}, nil
}

// PresenceOverview implements report.ReportService.
func (s *ReportServiceImpl) PresenceOverview(ctx context.Context) (report.PresenceReport, error) {
	pings, err := s.locationRepo.List(ctx)
	if err != nil {
		return report.PresenceReport{}, fmt.Errorf("failed to load location pings: %w", err)
	}

	people, err := s.directory.List(ctx, true)
	if err != nil {
		return report.PresenceReport{}, fmt.Errorf("failed to load personnel: %w", err)
	}

	reported := make(map[string]struct{}, len(pings))
	for _, p := range pings {
		reported[p.PersonalID] = struct{}{}
	}

	missing := make([]report.MissingPerson, 0)
	for _, person := range people {
		if _, ok := reported[person.PersonalID]; ok {
			continue
		}
		missing = append(missing, report.MissingPerson{
			PersonalID: person.PersonalID,
			FullName:   person.FullName,
		})
	}

	return report.PresenceReport{
		ReportedCount:    len(reported),
		NotReportedCount: len(missing),
		Pings:            pings,
		NotReported:      missing,
	}, nil
}

// displayName prefers the directory and falls back to the name stamped on the reports,
// so people removed from the roster still show up in past weeks.
func (s *ReportServiceImpl) displayName(ctx context.Context, personalID string, events []shift.Report) (string, error) {
	person, err := s.directory.Lookup(ctx, personalID)
	if err == nil {
		return person.FullName, nil
	}
	if !errors.Is(err, personnel.ErrPersonNotFound) {
		return "", err
	}

	for _, e := range events {
		if e.PersonalID == personalID && e.ReporterName != "" {
			return e.ReporterName, nil
		}
	}
	return "", personnel.ErrPersonNotFound
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
