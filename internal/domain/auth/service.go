package auth

import (
	"context"
)

type AuthService interface {
	// SupervisorLogin exchanges the shared access code for a supervisor access token.
	SupervisorLogin(ctx context.Context, req SupervisorLoginRequest) (TokenResponse, error)

	// Logout revokes the given access token.
	Logout(ctx context.Context, token string) error

	// StreamToken issues a short lived token for the live event stream.
	StreamToken(ctx context.Context, subject string) (StreamTokenResponse, error)
}
