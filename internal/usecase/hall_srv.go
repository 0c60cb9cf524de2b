package usecase

import (
	"context"
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

type HallService interface {
	GetHalls(ctx context.Context) ([]response.CinemaHallResponse, error)
	CreateHall(ctx context.Context, req *request.CinemaHallRequest) (*response.CinemaHallResponse, error)
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) GetHalls(ctx context.Context) ([]response.CinemaHallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	resp := make([]response.CinemaHallResponse, len(halls))
	for i, h := range halls {
		resp[i] = response.CinemaHallToResponse(h)
	}
	return resp, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.CinemaHallRequest) (*response.CinemaHallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hall validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	hall := &entity.CinemaHall{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Cinema hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.Int("capacity", hall.Capacity()),
	)

	resp := response.CinemaHallToResponse(hall)
	return &resp, nil
}
