package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

// ========================================
// REPORTING WINDOW
// ========================================

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// CurrentWeek returns the Sunday to Saturday week containing now, evaluated in loc.
func CurrentWeek(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	today := shift.DateOnly(local)
	start := today.AddDate(0, 0, -int(local.Weekday()))
	return WeekStarting(start)
}

// WeekStarting returns the seven day window beginning at start.
func WeekStarting(start time.Time) Window {
	start = shift.DateOnly(start)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

type WeekRequest struct {
	WeekStart string `json:"week_start"`
}

// Resolve turns the request into a window. An empty week_start means the current week.
func (r WeekRequest) Resolve(now time.Time, loc *time.Location) (Window, error) {
	ws := strings.TrimSpace(r.WeekStart)
	if ws == "" {
		return CurrentWeek(now, loc), nil
	}

	start, ok := validator.IsValidDate(ws)
	if !ok {
		return Window{}, validator.ValidationErrors{{
			Field:   "week_start",
			Message: ErrInvalidWeekStart.Error(),
		}}
	}
	return WeekStarting(start), nil
}

// ========================================
// WEEKLY HOURS REPORT
// ========================================

type WeeklyHoursReport struct {
	WeekStart       string                `json:"week_start"`
	WeekEnd         string                `json:"week_end"`
	TotalHours      float64               `json:"total_hours"`
	TotalShifts     int                   `json:"total_shifts"`
	ActivePersonnel int                   `json:"active_personnel"`
	FlaggedShifts   int                   `json:"flagged_shifts"`
	Rows            []shift.WeeklySummary `json:"rows"`
}

type PersonDetailReport struct {
	PersonalID string           `json:"personal_id"`
	FullName   string           `json:"full_name"`
	WeekStart  string           `json:"week_start"`
	WeekEnd    string           `json:"week_end"`
	Rows       []shift.DailyRow `json:"rows"`
}

// ExportFile is a rendered document ready to be written to a response or disk.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func WeeklyExportFilename(w Window) string {
	return fmt.Sprintf("weekly_hours_%s.xlsx", w.Start.Format(shift.DateLayout))
}

// ========================================
// PRESENCE
// ========================================

type MissingPerson struct {
	PersonalID string `json:"personal_id"`
	FullName   string `json:"full_name"`
}

type PresenceReport struct {
	ReportedCount    int             `json:"reported_count"`
	NotReportedCount int             `json:"not_reported_count"`
	Pings            []location.Ping `json:"pings"`
	NotReported      []MissingPerson `json:"not_reported"`
}
