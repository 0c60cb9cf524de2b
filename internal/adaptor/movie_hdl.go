package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/cinema/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}
	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/cinema/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}
	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovie handles POST /api/cinema/movies (admin)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}
	utils.ResponseCreated(w, "success", movie)
}
