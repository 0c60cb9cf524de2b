package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authRequired func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/user/register", authHandler.Register)
	r.Post("/api/user/login", authHandler.Login)
	r.Post("/api/token-auth", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// Logout revokes the presented token
	r.With(authRequired).Post("/api/user/logout", authHandler.Logout)
}
