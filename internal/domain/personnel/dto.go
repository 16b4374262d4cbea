package personnel

import (
	"fmt"
	"strings"

	"github.com/shift-report/shift-report-backend-go/internal/pkg/validator"
)

// Roster is the YAML document accepted by ImportRoster.
//
//	personnel:
//	  - personal_id: "8856612"
//	    full_name: Dana Levi
//	    commander: true
type Roster struct {
	Personnel []RosterEntry `yaml:"personnel"`
}

type RosterEntry struct {
	PersonalID string `yaml:"personal_id"`
	FullName   string `yaml:"full_name"`
	Commander  bool   `yaml:"commander"`
}

func (r *Roster) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Personnel) == 0 {
		return ErrEmptyRoster
	}

	seen := make(map[string]int, len(r.Personnel))
	for i := range r.Personnel {
		entry := &r.Personnel[i]
		entry.PersonalID = strings.TrimSpace(entry.PersonalID)
		entry.FullName = strings.TrimSpace(entry.FullName)
		field := fmt.Sprintf("personnel[%d]", i)

		if !validator.IsNumeric(entry.PersonalID) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".personal_id",
				Message: "personal_id must contain digits only",
			})
		}
		if validator.IsEmpty(entry.FullName) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".full_name",
				Message: "full_name is required",
			})
		}
		if prev, ok := seen[entry.PersonalID]; ok && entry.PersonalID != "" {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".personal_id",
				Message: fmt.Sprintf("duplicate of personnel[%d]", prev),
			})
		}
		seen[entry.PersonalID] = i
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportResult struct {
	Imported    int   `json:"imported"`
	Commanders  int   `json:"commanders"`
	Deactivated int64 `json:"deactivated"`
}

// LookupResponse is what the public form sees; it greets the reporter by name.
type LookupResponse struct {
	PersonalID string `json:"personal_id"`
	FullName   string `json:"full_name"`
}

type CommanderResponse struct {
	PersonalID string `json:"personal_id"`
	FullName   string `json:"full_name"`
}
