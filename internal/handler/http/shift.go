package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// Submit records an entry or exit report from the public form
func (h *shiftHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req shift.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.shiftService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report submitted", resp)
}

// List returns stored reports for supervisors
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := shift.ListReportFilterRequest{
		PersonalID: q.Get("personal_id"),
		ReportType: q.Get("report_type"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.shiftService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// Reset deletes every shift report
func (h *shiftHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.shiftService.Reset(r.Context(), getBoolQueryParam(r, "confirm", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift reports deleted", DeletedResponse{Deleted: deleted})
}
