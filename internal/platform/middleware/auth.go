package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"careteam/pkg/requestcontext"
)

// TokenValidator defines the interface for validating bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	ActorID string
}

// GetActorID retrieves the authenticated actor from the request context.
func GetActorID(r *http.Request) string {
	return requestcontext.ActorID(r.Context())
}

// RequireAuth validates the Authorization header and injects the actor
// identity into the request context. The actor becomes changedBy on status
// transitions; no session state is kept here.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token validation failed",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err.Error(),
				)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := requestcontext.WithActorID(r.Context(), claims.ActorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
