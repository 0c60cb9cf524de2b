package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type TicketResponse struct {
	ID           string `json:"id"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
	MovieSession string `json:"movie_session"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

// TicketListResponse nests the session list projection.
type TicketListResponse struct {
	ID           string                   `json:"id"`
	Row          int                      `json:"row"`
	Seat         int                      `json:"seat"`
	MovieSession MovieSessionListResponse `json:"movie_session"`
}

type OrderListResponse struct {
	ID        string               `json:"id"`
	Tickets   []TicketListResponse `json:"tickets"`
	CreatedAt time.Time            `json:"created_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID.String(),
		Tickets:   make([]TicketResponse, len(order.Tickets)),
		CreatedAt: order.CreatedAt,
	}
	for i, t := range order.Tickets {
		resp.Tickets[i] = TicketResponse{
			ID:           t.ID.String(),
			Row:          t.Row,
			Seat:         t.Seat,
			MovieSession: t.MovieSessionID.String(),
		}
	}
	return resp
}
