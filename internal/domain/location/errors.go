package location

import "errors"

var (
	ErrPingNotFound         = errors.New("no location ping for this person")
	ErrConfirmationRequired = errors.New("deleting location pings requires confirm=true")
)
