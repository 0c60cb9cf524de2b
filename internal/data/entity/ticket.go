package entity

import "github.com/google/uuid"

type Ticket struct {
	ID             uuid.UUID `db:"id"`
	OrderID        uuid.UUID `db:"order_id"`
	MovieSessionID uuid.UUID `db:"movie_session_id"`
	Row            int       `db:"row"`
	Seat           int       `db:"seat"`
	Position       int       `db:"position"` // index inside the order
}

// Place is a (row, seat) pair inside a hall.
type Place struct {
	Row  int
	Seat int
}
