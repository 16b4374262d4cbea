package auth

import "errors"

var (
	ErrInvalidAccessCode       = errors.New("invalid access code")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTokenRevoked            = errors.New("token has been revoked")
	ErrSupervisorOnly          = errors.New("supervisor access required")
	ErrAccessCodeNotConfigured = errors.New("supervisor access code is not configured")
)
