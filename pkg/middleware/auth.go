package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a raw token to the caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Identity, error)
}

// AuthToken requires "Authorization: Token <key>" (or "Bearer <key>") and
// stores the caller identity in the request context.
func AuthToken(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
				return
			}

			token, ok := parseAuthHeader(authHeader)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token header. Use: Token <key>")
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrInvalidCredentials) {
					logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid token.")
					return
				}
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetIdentity(r.Context(), *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - middleware cek role admin. Must run after AuthToken.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
				return
			}

			if identity.Role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", identity.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOrReadOnly lets safe methods through and requires admin for writes.
func AdminOrReadOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	admin := Admin(logger)
	return func(next http.Handler) http.Handler {
		guarded := admin(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				guarded.ServeHTTP(w, r)
			}
		})
	}
}

func parseAuthHeader(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return parts[1], true
	}
	return "", false
}
