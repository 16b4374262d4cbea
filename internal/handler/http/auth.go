package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/auth"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	SupervisorLogin(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// SupervisorLogin implements AuthHandler.
func (a *AuthHandlerImpl) SupervisorLogin(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.SupervisorLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("SupervisorLogin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.SupervisorLogin(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Supervisor logged in", "remote_addr", r.RemoteAddr)
	response.SuccessWithMessage(w, "Access granted", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// StreamToken implements AuthHandler.
func (a *AuthHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	subject, _ := claims["sub"].(string)
	if subject == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := a.authService.StreamToken(r.Context(), subject)
	if err != nil {
		slog.Error("StreamToken service error", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, resp)
}
