package report

import "errors"

var (
	ErrInvalidWeekStart       = errors.New("week_start must be a date in YYYY-MM-DD format")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
