package usecase

import (
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/clock"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Genre        GenreService
	Actor        ActorService
	Hall         HallService
	Movie        MovieService
	MovieSession MovieSessionService
	Order        OrderService
}

func NewService(
	repo *repository.Repository,
	publisher queue.Publisher,
	clk clock.Clock,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	validator := NewSeatValidator(repo.Ticket)
	writer := NewOrderWriter(repo, validator, clk, log)

	return &Service{
		Auth:         NewAuthService(repo, config, clk, log),
		Genre:        NewGenreService(repo, log),
		Actor:        NewActorService(repo, log),
		Hall:         NewHallService(repo, log),
		Movie:        NewMovieService(repo, config, log),
		MovieSession: NewMovieSessionService(repo, config, log),
		Order:        NewOrderService(repo, validator, writer, publisher, config, log),
	}
}
