package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shift-report/shift-report-backend-go/internal/domain/report"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Weekly hours"
	shiftsSheet  = "Shifts"
)

var summaryHeader = []interface{}{
	"Personal ID", "Name", "Total shifts", "Completed shifts", "Flagged shifts",
	"Total hours", "Avg hours per completed shift", "First shift", "Last shift",
}

var shiftsHeader = []interface{}{
	"Personal ID", "Name", "Entry date", "Entry time", "Exit date", "Exit time",
	"Hours", "Negative duration", "Work location",
}

// ExportWeeklyHours implements report.ReportService.
func (s *ReportServiceImpl) ExportWeeklyHours(ctx context.Context, req report.WeekRequest) (report.ExportFile, error) {
	window, err := req.Resolve(s.now(), s.location)
	if err != nil {
		return report.ExportFile{}, err
	}

	events, err := s.shiftRepo.ListForWindow(ctx, window.Start, window.End, nil)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to load shift reports: %w", err)
	}

	summary := s.calculator.SummarizeWeek(events, window.Start, window.End)
	shifts := s.calculator.Shifts(events, window.Start, window.End, nil)

	content, err := renderWeeklyWorkbook(window, summary, shifts)
	if err != nil {
		slog.Error("failed to render weekly workbook", "error", err, "week_start", window.Start)
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    report.WeeklyExportFilename(window),
		ContentType: report.XLSXContentType,
		Content:     content,
	}, nil
}

func renderWeeklyWorkbook(window report.Window, summary []shift.WeeklySummary, shifts []shift.Shift) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(shiftsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Weekly hours %s to %s",
		window.Start.Format(shift.DateLayout), window.End.Format(shift.DateLayout))
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return nil, err
	}
	if err := writeShiftsSheet(f, shifts, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSummarySheet puts the header on row 3 and one row per person below it.
func writeSummarySheet(f *excelize.File, summary []shift.WeeklySummary, headerStyle int) error {
	const headerRow = 3

	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", headerRow), &summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("I%d", headerRow), headerStyle); err != nil {
		return err
	}

	var totalHours float64
	totalShifts := 0
	for i, row := range summary {
		var avg interface{}
		if row.AvgHoursPerCompletedShift != nil {
			avg = *row.AvgHoursPerCompletedShift
		}
		values := []interface{}{
			row.PersonalID, row.ReporterName, row.TotalShifts, row.CompletedShifts, row.FlaggedShifts,
			row.TotalHours, avg, row.FirstShiftDate, row.LastShiftDate,
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", headerRow+1+i), &values); err != nil {
			return err
		}
		totalHours += row.TotalHours
		totalShifts += row.TotalShifts
	}

	totalsRow := headerRow + len(summary) + 1
	totals := []interface{}{"Total", nil, totalShifts, nil, nil, round2(totalHours)}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", totalsRow), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", totalsRow), fmt.Sprintf("I%d", totalsRow), headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "I", 18); err != nil {
		return err
	}

	if len(summary) == 0 {
		return nil
	}

	lastRow := headerRow + len(summary)
	return f.AddChart(summarySheet, "K3", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$F$%d", summarySheet, headerRow),
			Categories: fmt.Sprintf("'%s'!$B$%d:$B$%d", summarySheet, headerRow+1, lastRow),
			Values:     fmt.Sprintf("'%s'!$F$%d:$F$%d", summarySheet, headerRow+1, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: "Hours per person"}},
	})
}

func writeShiftsSheet(f *excelize.File, shifts []shift.Shift, headerStyle int) error {
	if err := f.SetSheetRow(shiftsSheet, "A1", &shiftsHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(shiftsSheet, "A1", "I1", headerStyle); err != nil {
		return err
	}

	for i, s := range shifts {
		values := []interface{}{
			s.Entry.PersonalID,
			s.Entry.ReporterName,
			formatDate(s.Entry),
			formatClock(s.Entry),
			nil,
			nil,
			nil,
			s.NegativeDuration,
			derefOrNil(s.Entry.WorkLocation),
		}
		if s.Exit != nil {
			values[4] = formatDate(*s.Exit)
			values[5] = formatClock(*s.Exit)
		}
		if s.DurationMinutes != nil {
			values[6] = round2(float64(*s.DurationMinutes) / 60.0)
		}
		if err := f.SetSheetRow(shiftsSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}

	return f.SetColWidth(shiftsSheet, "A", "I", 16)
}

func formatDate(r shift.Report) interface{} {
	if r.EventDate == nil {
		return nil
	}
	return r.EventDate.Format(shift.DateLayout)
}

func formatClock(r shift.Report) interface{} {
	if r.EventTime == nil {
		return nil
	}
	return r.EventTime.String()
}

func derefOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
