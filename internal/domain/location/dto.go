package location

import (
	"strings"

	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

const maxLocationLength = 200

type ReportLocationRequest struct {
	PersonalID      string `json:"personal_id"`
	CurrentLocation string `json:"current_location"`
	OnShift         *bool  `json:"on_shift"`
}

func (r *ReportLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	r.PersonalID = strings.TrimSpace(r.PersonalID)
	r.CurrentLocation = strings.TrimSpace(r.CurrentLocation)

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

	if validator.IsEmpty(r.CurrentLocation) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_location",
			Message: "current_location is required",
		})
	} else if validator.ExceedsLength(r.CurrentLocation, maxLocationLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_location",
			Message: "current_location must not exceed 200 characters",
		})
	}

	if r.OnShift == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "on_shift",
			Message: "on_shift is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
