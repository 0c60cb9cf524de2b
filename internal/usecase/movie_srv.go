package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieListResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieCreatedResponse, error)
}

type movieService struct {
	repo     *repository.Repository
	mediaURL string
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		mediaURL: config.App.MediaURL,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieListResponse, error) {
	movies, err := s.repo.Movie.FindAllListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	resp := make([]response.MovieListResponse, len(movies))
	for i, m := range movies {
		resp[i] = response.MovieToListResponse(m, s.mediaURL)
	}
	return resp, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	id, err := utils.ParseUUID(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie genres: %w", err)
	}
	actors, err := s.repo.Actor.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie actors: %w", err)
	}

	resp := response.MovieToDetailResponse(movie, genres, actors, s.mediaURL)
	return &resp, nil
}

// CreateMovie writes the movie and its genre and actor links in one transaction.
func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieCreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	genreIDs, err := parseIDs("genres", req.Genres)
	if err != nil {
		return nil, err
	}
	actorIDs, err := parseIDs("actors", req.Actors)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Duration:    req.Duration,
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Movie.Create(ctx, movie); err != nil {
			return err
		}
		if err := s.repo.Movie.AddGenres(ctx, movie.ID, genreIDs); err != nil {
			if errors.Is(err, repository.ErrInvalidReference) {
				return InvalidReferenceError("genres", "Invalid pk - object does not exist.")
			}
			return err
		}
		if err := s.repo.Movie.AddActors(ctx, movie.ID, actorIDs); err != nil {
			if errors.Is(err, repository.ErrInvalidReference) {
				return InvalidReferenceError("actors", "Invalid pk - object does not exist.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	return &response.MovieCreatedResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      utils.UUIDStrings(genreIDs),
		Actors:      utils.UUIDStrings(actorIDs),
	}, nil
}

// parseIDs parses and de-duplicates a list of ids, keeping first occurrence order.
func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := utils.ParseUUID(r)
		if err != nil {
			return nil, InvalidReferenceError(field, "Must be a valid UUID")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
