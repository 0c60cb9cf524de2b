package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser mounts the profile routes of the authenticated caller
func wireUser(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authRequired func(http.Handler) http.Handler,
) {
	r.With(authRequired).Route("/api/user/me", func(r chi.Router) {
		r.Get("/", authHandler.Me)
		r.Put("/", authHandler.UpdateMe)
		r.Patch("/", authHandler.UpdateMe)
	})
}
