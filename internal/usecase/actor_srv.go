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

type ActorService interface {
	GetActors(ctx context.Context) ([]response.ActorResponse, error)
	CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)
}

type actorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewActorService(repo *repository.Repository, log *zap.Logger) ActorService {
	return &actorService{
		repo: repo,
		log:  log.With(zap.String("service", "actor")),
	}
}

func (s *actorService) GetActors(ctx context.Context) ([]response.ActorResponse, error) {
	actors, err := s.repo.Actor.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get actors: %w", err)
	}

	resp := make([]response.ActorResponse, len(actors))
	for i, a := range actors {
		resp[i] = response.ActorToResponse(a)
	}
	return resp, nil
}

func (s *actorService) CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create actor validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	actor := &entity.Actor{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.repo.Actor.Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.log.Info("Actor created", zap.String("actor_id", actor.ID.String()))

	resp := response.ActorToResponse(actor)
	return &resp, nil
}
