package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireOrder mounts the order routes. Any authenticated user may order,
// listings are scoped to the caller.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
	})
}
