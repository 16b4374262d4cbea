package location

import "time"

// Ping is the last reported whereabouts of a person. Each person has at most one.
type Ping struct {
	PersonalID      string    `json:"personal_id"`
	ReporterName    string    `json:"reporter_name"`
	CurrentLocation string    `json:"current_location"`
	OnShift         bool      `json:"on_shift"`
	ReportedAt      time.Time `json:"reported_at"`
}
