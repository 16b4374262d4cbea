package report

import (
	"context"
)

// ReportService builds the supervisor views over shift reports and location pings.
type ReportService interface {
	// WeeklyHours summarizes worked hours per person for the week of req.
	WeeklyHours(ctx context.Context, req WeekRequest) (WeeklyHoursReport, error)

	// PersonDailyDetail lists one person's shifts for the week of req.
	PersonDailyDetail(ctx context.Context, personalID string, req WeekRequest) (PersonDetailReport, error)

	// ExportWeeklyHours renders the weekly report as an xlsx workbook.
	ExportWeeklyHours(ctx context.Context, req WeekRequest) (ExportFile, error)

	// PresenceOverview lists location pings and the directory members without one.
	PresenceOverview(ctx context.Context) (PresenceReport, error)
}
