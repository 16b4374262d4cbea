package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/report"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Weekly hours per person
	GetWeeklyHours(w http.ResponseWriter, r *http.Request)
	ExportWeeklyHours(w http.ResponseWriter, r *http.Request)

	// One person's shifts for the week
	GetPersonDetail(w http.ResponseWriter, r *http.Request)

	// Who has and has not sent a location ping
	GetPresence(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func weekRequest(r *http.Request) report.WeekRequest {
	return report.WeekRequest{WeekStart: r.URL.Query().Get("week_start")}
}

// GetWeeklyHours handles GET /admin/reports/weekly
func (h *reportHandlerImpl) GetWeeklyHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.WeeklyHours(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWeeklyHours handles GET /admin/reports/weekly/export
func (h *reportHandlerImpl) ExportWeeklyHours(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportWeeklyHours(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}

// GetPersonDetail handles GET /admin/reports/weekly/{personal_id}
func (h *reportHandlerImpl) GetPersonDetail(w http.ResponseWriter, r *http.Request) {
	personalID := chi.URLParam(r, "personal_id")

	result, err := h.reportService.PersonDailyDetail(r.Context(), personalID, weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPresence handles GET /admin/presence
func (h *reportHandlerImpl) GetPresence(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PresenceOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
