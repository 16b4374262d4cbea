package auth

import "github.com/shift-report/shift-report-backend-go/internal/pkg/validator"

// RoleSupervisor is the only role that can be issued. Reporters submit without a token.
const RoleSupervisor = "supervisor"

type SupervisorLoginRequest struct {
	AccessCode string `json:"access_code"`
}

func (r *SupervisorLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccessCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "access_code",
			Message: "access_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	Role        string `json:"role"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
