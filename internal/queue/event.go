// Package queue publishes domain events to RabbitMQ.
package queue

import "time"

const OrderCreatedQueue = "order.created"

type OrderCreatedTicket struct {
	MovieSessionID string `json:"movie_session_id"`
	Row            int    `json:"row"`
	Seat           int    `json:"seat"`
}

// OrderCreatedEvent is published once the order transaction has committed.
type OrderCreatedEvent struct {
	OrderID   string               `json:"order_id"`
	UserID    string               `json:"user_id"`
	CreatedAt time.Time            `json:"created_at"`
	Tickets   []OrderCreatedTicket `json:"tickets"`
}
