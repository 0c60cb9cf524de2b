package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Movie        *MovieHandler
	MovieSession *MovieSessionHandler
	Order        *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Catalog:      NewCatalogHandler(service.Genre, service.Actor, service.Hall, log),
		Movie:        NewMovieHandler(service.Movie, log),
		MovieSession: NewMovieSessionHandler(service.MovieSession, log),
		Order:        NewOrderHandler(service.Order, log),
	}
}
