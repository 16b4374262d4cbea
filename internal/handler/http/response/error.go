package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shift-report/shift-report-backend-go/internal/domain/auth"
	"github.com/shift-report/shift-report-backend-go/internal/domain/location"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidAccessCode):
		Unauthorized(w, "Invalid access code")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrSupervisorOnly):
		Forbidden(w, "Supervisor access required")
	case errors.Is(err, auth.ErrAccessCodeNotConfigured):
		ServiceUnavailable(w, "Supervisor access is not configured")

	// Personnel domain errors
	case errors.Is(err, personnel.ErrPersonNotFound):
		NotFound(w, "Personal ID not found in the directory")
	case errors.Is(err, personnel.ErrEmptyRoster):
		BadRequest(w, "Roster contains no personnel", nil)
	case errors.Is(err, personnel.ErrInvalidRoster):
		BadRequest(w, err.Error(), nil)

	// Shift report and location errors
	case errors.Is(err, shift.ErrReportNotFound):
		NotFound(w, "Shift report not found")
	case errors.Is(err, location.ErrPingNotFound):
		NotFound(w, "Location ping not found")
	case errors.Is(err, shift.ErrConfirmationRequired),
		errors.Is(err, location.ErrConfirmationRequired):
		BadRequest(w, err.Error(), map[string]string{"confirm": "must be true"})

	// Default
	default:
		slog.Error("Unhandled request error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
