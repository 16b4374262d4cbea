package shift

import (
	"strings"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

// ========================================
// SUBMISSION DTOs
// ========================================

const maxNotesLength = 1000

type SubmitReportRequest struct {
	ReportType    ReportType `json:"report_type"`
	PersonalID    string     `json:"personal_id"`
	UnitCommander string     `json:"unit_commander"`
	WorkLocation  *string    `json:"work_location,omitempty"`
	HandoverFrom  *string    `json:"handover_from,omitempty"`
	HandoverTo    *string    `json:"handover_to,omitempty"`
	ReportsCount  *int       `json:"reports_count,omitempty"`
	SpecialNotes  *string    `json:"special_notes,omitempty"`
}

func (r *SubmitReportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.PersonalID = strings.TrimSpace(r.PersonalID)
	r.UnitCommander = strings.TrimSpace(r.UnitCommander)

	if !r.ReportType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "report_type",
			Message: "report_type must be one of: entry, exit",
		})
	}

	if validator.IsEmpty(r.PersonalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "personal_id",
			Message: "personal_id is required",
		})
	} else if !validator.IsNumeric(r.PersonalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "personal_id",
			Message: "personal_id must contain digits only",
		})
	}

	if validator.IsEmpty(r.UnitCommander) {
		errs = append(errs, validator.ValidationError{
			Field:   "unit_commander",
			Message: "unit_commander is required",
		})
	}

	if r.SpecialNotes != nil && validator.ExceedsLength(*r.SpecialNotes, maxNotesLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "special_notes",
			Message: "special_notes must not exceed 1000 characters",
		})
	}

	switch r.ReportType {
	case ReportTypeEntry:
		if r.WorkLocation == nil || validator.IsEmpty(*r.WorkLocation) {
			errs = append(errs, validator.ValidationError{
				Field:   "work_location",
				Message: "work_location is required for entry reports",
			})
		}
	case ReportTypeExit:
		if r.ReportsCount == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "reports_count",
				Message: "reports_count is required for exit reports",
			})
		} else if *r.ReportsCount < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "reports_count",
				Message: "reports_count must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportResponse struct {
	ID            string     `json:"id"`
	ReportType    ReportType `json:"report_type"`
	PersonalID    string     `json:"personal_id"`
	ReporterName  string     `json:"reporter_name"`
	UnitCommander *string    `json:"unit_commander,omitempty"`
	WorkLocation  *string    `json:"work_location,omitempty"`
	HandoverFrom  *string    `json:"handover_from,omitempty"`
	HandoverTo    *string    `json:"handover_to,omitempty"`
	ReportsCount  *int       `json:"reports_count,omitempty"`
	SpecialNotes  *string    `json:"special_notes,omitempty"`
	EventDate     *string    `json:"event_date,omitempty"`
	EventTime     *string    `json:"event_time,omitempty"`
	RecordedAt    time.Time  `json:"recorded_at"`
}

func NewReportResponse(r Report) ReportResponse {
	resp := ReportResponse{
		ID:            r.ID,
		ReportType:    r.ReportType,
		PersonalID:    r.PersonalID,
		ReporterName:  r.ReporterName,
		UnitCommander: r.UnitCommander,
		WorkLocation:  r.WorkLocation,
		HandoverFrom:  r.HandoverFrom,
		HandoverTo:    r.HandoverTo,
		ReportsCount:  r.ReportsCount,
		SpecialNotes:  r.SpecialNotes,
		RecordedAt:    r.RecordedAt,
	}
	if r.EventDate != nil {
		d := r.EventDate.Format(DateLayout)
		resp.EventDate = &d
	}
	if r.EventTime != nil {
		t := r.EventTime.String()
		resp.EventTime = &t
	}
	return resp
}

// ReportFilter narrows the supervisor listing. Dates are inclusive and compare against event_date.
type ReportFilter struct {
	PersonalID *string
	ReportType *ReportType
	StartDate  *time.Time
	EndDate    *time.Time
}

type ListReportFilterRequest struct {
	PersonalID string
	ReportType string
	StartDate  string
	EndDate    string
}

func (r ListReportFilterRequest) ToFilter() (ReportFilter, error) {
	var (
		errs   validator.ValidationErrors
		filter ReportFilter
	)

	if r.PersonalID != "" {
		id := strings.TrimSpace(r.PersonalID)
		filter.PersonalID = &id
	}
	if r.ReportType != "" {
		t := ReportType(r.ReportType)
		if !t.IsValid() {
			errs = append(errs, validator.ValidationError{Field: "report_type", Message: "report_type must be one of: entry, exit"})
		} else {
			filter.ReportType = &t
		}
	}
	if r.StartDate != "" {
		d, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		} else {
			filter.StartDate = &d
		}
	}
	if r.EndDate != "" {
		d, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		} else {
			filter.EndDate = &d
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return ReportFilter{}, errs
	}
	return filter, nil
}

// ========================================
// AGGREGATES
// ========================================

// WeeklySummary aggregates one person's shifts that started inside a reporting window.
type WeeklySummary struct {
	PersonalID      string `json:"personal_id"`
	ReporterName    string `json:"reporter_name"`
	TotalShifts     int    `json:"total_shifts"`
	CompletedShifts int    `json:"completed_shifts"`
	// FlaggedShifts counts same-day shifts with a negative duration. They are still summed.
	FlaggedShifts             int      `json:"flagged_shifts"`
	TotalHours                float64  `json:"total_hours"`
	AvgHoursPerCompletedShift *float64 `json:"avg_hours_per_completed_shift"`
	FirstShiftDate            string   `json:"first_shift_date"`
	LastShiftDate             string   `json:"last_shift_date"`
}

// DailyRow is one entry of a person inside a window with its matched exit.
type DailyRow struct {
	EntryDate        string   `json:"entry_date"`
	EntryTime        *string  `json:"entry_time"`
	ExitDate         *string  `json:"exit_date"`
	ExitTime         *string  `json:"exit_time"`
	DurationHours    *float64 `json:"duration_hours"`
	NegativeDuration bool     `json:"negative_duration"`
	WorkLocation     *string  `json:"work_location,omitempty"`
}
