// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds the handlers on top of service and mounts every route.
// cacheStore may be nil, which serves catalog reads uncached.
func Wiring(service *usecase.Service, cacheStore cache.Store, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, cacheStore, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	cacheStore cache.Store,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	authRequired := middleware.AuthToken(service.Auth, logger)

	wireAuth(r, handler.Auth, authRequired)
	wireUser(r, handler.Auth, authRequired)

	ttl := time.Duration(config.Redis.CacheTTL) * time.Second

	r.Route("/api/cinema", func(r chi.Router) {
		r.Use(authRequired)

		wireCatalog(r, handler.Catalog, cacheStore, ttl, logger)
		wireMovie(r, handler.Movie, handler.MovieSession, cacheStore, ttl, logger)
		wireOrder(r, handler.Order)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
