package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieSessionService interface {
	GetSessions(ctx context.Context, query request.SessionListQuery) ([]response.MovieSessionListResponse, error)
	GetSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error)
	CreateSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error)
	UpdateSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type movieSessionService struct {
	repo     *repository.Repository
	mediaURL string
	log      *zap.Logger
}

func NewMovieSessionService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) MovieSessionService {
	return &movieSessionService{
		repo:     repo,
		mediaURL: config.App.MediaURL,
		log:      log.With(zap.String("service", "movie_session")),
	}
}

func (s *movieSessionService) GetSessions(ctx context.Context, query request.SessionListQuery) ([]response.MovieSessionListResponse, error) {
	var filter repository.SessionFilter

	if query.Date != "" {
		day, err := utils.ParseDate(query.Date)
		if err != nil {
			return nil, FieldErrors{"date": "Enter a valid date in YYYY-MM-DD format"}
		}
		filter.Date = &day
	}
	if query.Movie != "" {
		movieID, err := utils.ParseUUID(query.Movie)
		if err != nil {
			return nil, FieldErrors{"movie": "Must be a valid UUID"}
		}
		filter.MovieID = &movieID
	}

	sessions, err := s.repo.MovieSession.FindListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	resp := make([]response.MovieSessionListResponse, len(sessions))
	for i, item := range sessions {
		resp[i] = response.MovieSessionToListResponse(item, s.mediaURL)
	}
	return resp, nil
}

func (s *movieSessionService) GetSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error) {
	id, err := utils.ParseUUID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
	}

	session, err := s.repo.MovieSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
	}

	movie, err := s.repo.Movie.FindListItemByID(ctx, session.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get session movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", session.MovieID.String(), ErrNotFound)
	}

	places, err := s.repo.Ticket.FindTakenPlaces(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get taken places: %w", err)
	}

	return &response.MovieSessionDetailResponse{
		ID:          session.ID.String(),
		ShowTime:    session.ShowTime,
		Movie:       response.MovieToListResponse(movie, s.mediaURL),
		CinemaHall:  response.CinemaHallToResponse(session.Hall),
		TakenPlaces: response.PlacesToResponse(places),
	}, nil
}

func (s *movieSessionService) CreateSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error) {
	session, err := s.sessionFromRequest(req)
	if err != nil {
		return nil, err
	}
	session.ID = uuid.New()

	if err := s.repo.MovieSession.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, s.referenceError(ctx, session)
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Movie session created",
		zap.String("session_id", session.ID.String()),
		zap.Time("show_time", session.ShowTime),
	)

	resp := response.MovieSessionToResponse(session)
	return &resp, nil
}

func (s *movieSessionService) UpdateSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error) {
	id, err := utils.ParseUUID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
	}

	session, err := s.sessionFromRequest(req)
	if err != nil {
		return nil, err
	}
	session.ID = id

	if err := s.repo.MovieSession.Update(ctx, session); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
		case errors.Is(err, repository.ErrInvalidReference):
			return nil, s.referenceError(ctx, session)
		}
		return nil, fmt.Errorf("update session: %w", err)
	}

	resp := response.MovieSessionToResponse(session)
	return &resp, nil
}

func (s *movieSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := utils.ParseUUID(sessionID)
	if err != nil {
		return fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
	}

	if err := s.repo.MovieSession.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie session %s: %w", sessionID, ErrNotFound)
		}
		if errors.Is(err, repository.ErrReferenced) {
			s.log.Warn("Delete of booked session refused", zap.String("session_id", sessionID))
			return InUseError("Cannot delete a movie session that has tickets.")
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ==================== HELPER METHODS ====================

func (s *movieSessionService) sessionFromRequest(req *request.MovieSessionRequest) (*entity.MovieSession, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Movie session validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	showTime, err := time.Parse(time.RFC3339, req.ShowTime)
	if err != nil {
		return nil, FieldErrors{"show_time": "Enter a valid RFC3339 datetime"}
	}
	movieID, err := utils.ParseUUID(req.Movie)
	if err != nil {
		return nil, FieldErrors{"movie": "Must be a valid UUID"}
	}
	hallID, err := utils.ParseUUID(req.CinemaHall)
	if err != nil {
		return nil, FieldErrors{"cinema_hall": "Must be a valid UUID"}
	}

	return &entity.MovieSession{
		ShowTime:     showTime.UTC(),
		MovieID:      movieID,
		CinemaHallID: hallID,
	}, nil
}

// referenceError names the reference that broke the foreign key.
func (s *movieSessionService) referenceError(ctx context.Context, session *entity.MovieSession) error {
	hall, err := s.repo.Hall.FindByID(ctx, session.CinemaHallID)
	if err == nil && hall == nil {
		return InvalidReferenceError("cinema_hall",
			fmt.Sprintf("Invalid pk %q - object does not exist.", session.CinemaHallID.String()))
	}
	return InvalidReferenceError("movie",
		fmt.Sprintf("Invalid pk %q - object does not exist.", session.MovieID.String()))
}
