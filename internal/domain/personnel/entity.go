package personnel

import "time"

type Person struct {
	PersonalID  string    `json:"personal_id"`
	FullName    string    `json:"full_name"`
	IsCommander bool      `json:"is_commander"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
