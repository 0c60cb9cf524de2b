package wire

import (
	"time"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog mounts genres, actors and cinema halls. Everyone signed in
// can read them, only admins can create.
func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	cacheStore cache.Store,
	ttl time.Duration,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminOrReadOnly(log))

		r.With(middleware.Cache(cacheStore, "genres", ttl, log)).Route("/genres", func(r chi.Router) {
			r.Get("/", catalogHandler.GetGenres)
			r.Post("/", catalogHandler.CreateGenre)
		})

		r.With(middleware.Cache(cacheStore, "actors", ttl, log)).Route("/actors", func(r chi.Router) {
			r.Get("/", catalogHandler.GetActors)
			r.Post("/", catalogHandler.CreateActor)
		})

		r.With(middleware.Cache(cacheStore, "cinema_halls", ttl, log)).Route("/cinema_halls", func(r chi.Router) {
			r.Get("/", catalogHandler.GetHalls)
			r.Post("/", catalogHandler.CreateHall)
		})
	})
}
