package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/auth"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	jwt.Service
	accessCodeHash string
}

// NewAuthService creates the supervisor auth service. accessCodeHash is the bcrypt hash of
// the shared supervisor access code.
func NewAuthService(jwtService jwt.Service, accessCodeHash string) auth.AuthService {
	return &AuthServiceImpl{
		Service:        jwtService,
		accessCodeHash: accessCodeHash,
	}
}

// HashAccessCode returns the bcrypt hash to configure as the supervisor access code.
func HashAccessCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SupervisorLogin implements auth.AuthService.
func (a *AuthServiceImpl) SupervisorLogin(ctx context.Context, req auth.SupervisorLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if a.accessCodeHash == "" {
		return auth.TokenResponse{}, auth.ErrAccessCodeNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.accessCodeHash), []byte(req.AccessCode)); err != nil {
		slog.Warn("Rejected supervisor login")
		return auth.TokenResponse{}, auth.ErrInvalidAccessCode
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(auth.RoleSupervisor, auth.RoleSupervisor)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        auth.RoleSupervisor,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}

	parsed, err := jwtauth.VerifyToken(a.Service.JWTAuth(), token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.Service.RevokeToken(token, parsed.Expiration().Unix())
	return nil
}

// StreamToken implements auth.AuthService.
func (a *AuthServiceImpl) StreamToken(ctx context.Context, subject string) (auth.StreamTokenResponse, error) {
	token, expiresIn, err := a.Service.GenerateSSEToken(subject)
	if err != nil {
		return auth.StreamTokenResponse{}, fmt.Errorf("failed to create stream token: %w", err)
	}
	return auth.StreamTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
