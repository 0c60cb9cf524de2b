package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieSessionHandler struct {
	service usecase.MovieSessionService
	log     *zap.Logger
}

func NewMovieSessionHandler(service usecase.MovieSessionService, log *zap.Logger) *MovieSessionHandler {
	return &MovieSessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie_session")),
	}
}

// GetSessions handles GET /api/cinema/movie_sessions?date=YYYY-MM-DD&movie=<id>
func (h *MovieSessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sessions, err := h.service.GetSessions(r.Context(), request.SessionListQuery{
		Date:  query.Get("date"),
		Movie: query.Get("movie"),
	})
	if err != nil {
		handleServiceError(w, h.log, err, "get sessions")
		return
	}
	utils.ResponseSuccess(w, "success", sessions)
}

// GetSessionByID handles GET /api/cinema/movie_sessions/{id}
func (h *MovieSessionHandler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSessionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get session")
		return
	}
	utils.ResponseSuccess(w, "success", session)
}

// CreateSession handles POST /api/cinema/movie_sessions (admin)
func (h *MovieSessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create session")
		return
	}
	utils.ResponseCreated(w, "success", session)
}

// UpdateSession handles PUT /api/cinema/movie_sessions/{id} (admin)
func (h *MovieSessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req request.MovieSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.UpdateSession(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update session")
		return
	}
	utils.ResponseSuccess(w, "success", session)
}

// DeleteSession handles DELETE /api/cinema/movie_sessions/{id} (admin)
func (h *MovieSessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete session")
		return
	}
	utils.ResponseNoContent(w)
}
