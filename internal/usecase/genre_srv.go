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

type GenreService interface {
	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	resp := make([]response.GenreResponse, len(genres))
	for i, g := range genres {
		resp[i] = response.GenreToResponse(g)
	}
	return resp, nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	genre := &entity.Genre{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.Name),
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, alreadyExistsError("name", "genre with this name already exists.")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("genre_id", genre.ID.String()), zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}
