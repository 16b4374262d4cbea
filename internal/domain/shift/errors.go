package shift

import "errors"

// Shift report domain errors
var (
	ErrReportNotFound       = errors.New("shift report not found")
	ErrConfirmationRequired = errors.New("deleting shift reports requires confirm=true")
)
