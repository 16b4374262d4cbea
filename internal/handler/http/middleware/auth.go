package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shift-report/shift-report-backend-go/internal/domain/auth"
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/response"
)

// RevocationChecker reports whether a still-valid token was logged out.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired must run after jwtauth.Verifier. It accepts only unrevoked access tokens.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revocations.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// SupervisorOnly requires the supervisor role claim.
func SupervisorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != auth.RoleSupervisor {
			response.HandleError(w, auth.ErrSupervisorOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
