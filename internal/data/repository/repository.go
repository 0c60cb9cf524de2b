package repository

import (
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx           TxManager
	User         UserRepository
	AuthToken    AuthTokenRepository
	Genre        GenreRepository
	Actor        ActorRepository
	Hall         HallRepository
	Movie        MovieRepository
	MovieSession MovieSessionRepository
	Ticket       TicketRepository
	Order        OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           NewTxManager(db, log),
		User:         NewUserRepository(db, log),
		AuthToken:    NewAuthTokenRepository(db, log),
		Genre:        NewGenreRepository(db, log),
		Actor:        NewActorRepository(db, log),
		Hall:         NewHallRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		MovieSession: NewMovieSessionRepository(db, log),
		Ticket:       NewTicketRepository(db, log),
		Order:        NewOrderRepository(db, log),
	}
}
