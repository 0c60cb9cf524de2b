package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// CatalogHandler serves genres, actors and cinema halls.
type CatalogHandler struct {
	genres usecase.GenreService
	actors usecase.ActorService
	halls  usecase.HallService
	log    *zap.Logger
}

func NewCatalogHandler(
	genres usecase.GenreService,
	actors usecase.ActorService,
	halls usecase.HallService,
	log *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		genres: genres,
		actors: actors,
		halls:  halls,
		log:    log.With(zap.String("handler", "catalog")),
	}
}

// GetGenres handles GET /api/cinema/genres
func (h *CatalogHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.GetGenres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}
	utils.ResponseSuccess(w, "success", genres)
}

// CreateGenre handles POST /api/cinema/genres (admin)
func (h *CatalogHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	genre, err := h.genres.CreateGenre(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}
	utils.ResponseCreated(w, "success", genre)
}

// GetActors handles GET /api/cinema/actors
func (h *CatalogHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.actors.GetActors(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get actors")
		return
	}
	utils.ResponseSuccess(w, "success", actors)
}

// CreateActor handles POST /api/cinema/actors (admin)
func (h *CatalogHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor, err := h.actors.CreateActor(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create actor")
		return
	}
	utils.ResponseCreated(w, "success", actor)
}

// GetHalls handles GET /api/cinema/cinema_halls
func (h *CatalogHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.halls.GetHalls(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get halls")
		return
	}
	utils.ResponseSuccess(w, "success", halls)
}

// CreateHall handles POST /api/cinema/cinema_halls (admin)
func (h *CatalogHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaHallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.halls.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}
	utils.ResponseCreated(w, "success", hall)
}
