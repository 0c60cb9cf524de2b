package wire

import (
	"time"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	sessionHandler *adaptor.MovieSessionHandler,
	cacheStore cache.Store,
	ttl time.Duration,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminOrReadOnly(log))

		r.With(middleware.Cache(cacheStore, "movies", ttl, log)).Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.GetMovies)
			r.Post("/", movieHandler.CreateMovie)
			r.Get("/{id}", movieHandler.GetMovieByID)
		})

		// Sessions stay uncached, tickets_available moves with every order
		r.Route("/movie_sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSessions) // ?date=2024-01-16&movie=<uuid>
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/{id}", sessionHandler.GetSessionByID)
			r.Put("/{id}", sessionHandler.UpdateSession)
			r.Patch("/{id}", sessionHandler.UpdateSession)
			r.Delete("/{id}", sessionHandler.DeleteSession)
		})
	})
}
