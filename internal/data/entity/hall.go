package entity

import "github.com/google/uuid"

type CinemaHall struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	Rows       int       `db:"rows"`
	SeatsInRow int       `db:"seats_in_row"`
}

func (h *CinemaHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}
