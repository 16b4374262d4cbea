package personnel

import "errors"

var (
	ErrPersonNotFound = errors.New("personal id is not in the personnel directory")
	ErrEmptyRoster    = errors.New("roster contains no personnel")
	ErrInvalidRoster  = errors.New("roster is not valid YAML")
)
