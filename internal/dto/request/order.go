package request

// TicketRequest keeps row and seat as pointers so an absent value is told
// apart from 0. Bounds are checked against the hall by the seat validator.
type TicketRequest struct {
	Row          *int   `json:"row" validate:"required"`
	Seat         *int   `json:"seat" validate:"required"`
	MovieSession string `json:"movie_session" validate:"required,uuid"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}
