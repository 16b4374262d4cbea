package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.Service
}

func NewLocationHandler(locationService location.Service) LocationHandler {
	return &locationHandlerImpl{locationService: locationService}
}

func (h *locationHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	var req location.ReportLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Location report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	ping, err := h.locationService.Report(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location updated", ping)
}

func (h *locationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	pings, err := h.locationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pings)
}

func (h *locationHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.locationService.Reset(r.Context(), getBoolQueryParam(r, "confirm", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location pings deleted", DeletedResponse{Deleted: deleted})
}
