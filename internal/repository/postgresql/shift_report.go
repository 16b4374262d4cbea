package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/database"
)

const shiftReportColumns = `id, report_type, personal_id, reporter_name, unit_commander, work_location,
	handover_from, handover_to, reports_count, special_notes, event_date, event_time, recorded_at`

type shiftReportRepository struct {
	db *database.DB
}

func NewShiftReportRepository(db *database.DB) shift.Repository {
	return &shiftReportRepository{db: db}
}

// Create implements shift.Repository.
func (s *shiftReportRepository) Create(ctx context.Context, report shift.Report) (shift.Report, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_reports (` + shiftReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := q.Exec(ctx, query,
		report.ID,
		string(report.ReportType),
		report.PersonalID,
		report.ReporterName,
		report.UnitCommander,
		report.WorkLocation,
		report.HandoverFrom,
		report.HandoverTo,
		report.ReportsCount,
		report.SpecialNotes,
		report.EventDate,
		clockTimeParam(report.EventTime),
		report.RecordedAt,
	)
	if err != nil {
		return shift.Report{}, fmt.Errorf("failed to create shift report: %w", err)
	}

	return report, nil
}

// GetByID implements shift.Repository.
func (s *shiftReportRepository) GetByID(ctx context.Context, id string) (shift.Report, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + shiftReportColumns + ` FROM shift_reports WHERE id = $1`

	report, err := scanShiftReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Report{}, shift.ErrReportNotFound
		}
		return shift.Report{}, fmt.Errorf("failed to get shift report: %w", err)
	}
	return report, nil
}

// List implements shift.Repository.
func (s *shiftReportRepository) List(ctx context.Context, filter shift.ReportFilter) ([]shift.Report, error) {
	q := GetQuerier(ctx, s.db)

	where := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.PersonalID != nil && *filter.PersonalID != "" {
		where += fmt.Sprintf(" AND personal_id = $%d", argIdx)
		args = append(args, *filter.PersonalID)
		argIdx++
	}
	if filter.ReportType != nil {
		where += fmt.Sprintf(" AND report_type = $%d", argIdx)
		args = append(args, string(*filter.ReportType))
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND event_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND event_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := `SELECT ` + shiftReportColumns + ` FROM shift_reports WHERE ` + where + ` ORDER BY recorded_at ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift reports: %w", err)
	}
	return collectShiftReports(rows)
}

// ListForWindow implements shift.Repository.
func (s *shiftReportRepository) ListForWindow(ctx context.Context, start, end time.Time, personalID *string) ([]shift.Report, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		WITH window_entries AS (
			SELECT ` + shiftReportColumns + `
			FROM shift_reports
			WHERE report_type = 'entry'
			  AND event_date BETWEEN $1::date AND $2::date
			  AND ($3::text IS NULL OR personal_id = $3)
		)
		SELECT ` + shiftReportColumns + ` FROM window_entries
		UNION ALL
		SELECT ` + shiftReportColumns + `
		FROM shift_reports
		WHERE report_type = 'exit'
		  AND personal_id IN (SELECT personal_id FROM window_entries)
		  AND recorded_at > (SELECT MIN(recorded_at) FROM window_entries)
		ORDER BY recorded_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, start, end, personalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift reports for window: %w", err)
	}
	return collectShiftReports(rows)
}

// DeleteAll implements shift.Repository.
func (s *shiftReportRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_reports`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shift reports: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectShiftReports(rows pgx.Rows) ([]shift.Report, error) {
	defer rows.Close()

	reports := make([]shift.Report, 0)
	for rows.Next() {
		report, err := scanShiftReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift reports: %w", err)
	}
	return reports, nil
}

func scanShiftReport(row pgx.Row) (shift.Report, error) {
	var (
		report     shift.Report
		reportType string
		eventDate  pgtype.Date
		eventTime  pgtype.Time
	)

	err := row.Scan(
		&report.ID, &reportType, &report.PersonalID, &report.ReporterName,
		&report.UnitCommander, &report.WorkLocation,
		&report.HandoverFrom, &report.HandoverTo, &report.ReportsCount, &report.SpecialNotes,
		&eventDate, &eventTime, &report.RecordedAt,
	)
	if err != nil {
		return shift.Report{}, err
	}

	report.ReportType = shift.ReportType(reportType)
	if eventDate.Valid {
		d := shift.DateOnly(eventDate.Time)
		report.EventDate = &d
	}
	if eventTime.Valid {
		minutes := int(eventTime.Microseconds / int64(time.Minute/time.Microsecond))
		c := shift.ClockTime(minutes)
		report.EventTime = &c
	}
	return report, nil
}

func clockTimeParam(t *shift.ClockTime) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{
		Microseconds: int64(t.Minutes()) * int64(time.Minute/time.Microsecond),
		Valid:        true,
	}
}
