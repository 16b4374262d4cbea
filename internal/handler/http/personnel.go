package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

// maxRosterSize caps roster uploads at 1 MiB.
const maxRosterSize = 1 << 20

type PersonnelHandler interface {
	Lookup(w http.ResponseWriter, r *http.Request)
	ListCommanders(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ImportRoster(w http.ResponseWriter, r *http.Request)
}

type personnelHandlerImpl struct {
	personnelService personnel.Service
}

func NewPersonnelHandler(personnelService personnel.Service) PersonnelHandler {
	return &personnelHandlerImpl{personnelService: personnelService}
}

// Lookup resolves a personal id to the name shown on the form
func (h *personnelHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	personalID := chi.URLParam(r, "personal_id")

	person, err := h.personnelService.Lookup(r.Context(), personalID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, personnel.LookupResponse{
		PersonalID: person.PersonalID,
		FullName:   person.FullName,
	})
}

func (h *personnelHandlerImpl) ListCommanders(w http.ResponseWriter, r *http.Request) {
	commanders, err := h.personnelService.ListCommanders(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, commanders)
}

func (h *personnelHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.personnelService.List(r.Context(), getBoolQueryParam(r, "active_only", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, people)
}

// ImportRoster replaces the directory with the YAML roster in the request body
func (h *personnelHandlerImpl) ImportRoster(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRosterSize)

	result, err := h.personnelService.ImportRoster(r.Context(), body)
	if err != nil {
		slog.Error("ImportRoster service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Roster imported", result)
}
