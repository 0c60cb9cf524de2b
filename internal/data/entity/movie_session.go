package entity

import (
	"time"

	"github.com/google/uuid"
)

type MovieSession struct {
	ID           uuid.UUID `db:"id"`
	ShowTime     time.Time `db:"show_time"`
	MovieID      uuid.UUID `db:"movie_id"`
	CinemaHallID uuid.UUID `db:"cinema_hall_id"`

	// Hall is loaded together with the session by the repository; seat
	// validation needs its dimensions.
	Hall *CinemaHall `db:"-"`
}

// MovieSessionListItem carries the joined columns of the session list view.
type MovieSessionListItem struct {
	ID                 uuid.UUID
	ShowTime           time.Time
	MovieID            uuid.UUID
	MovieTitle         string
	MovieImage         *string
	CinemaHallID       uuid.UUID
	CinemaHallName     string
	CinemaHallCapacity int
	TicketsTaken       int
}

func (s *MovieSessionListItem) TicketsAvailable() int {
	return s.CinemaHallCapacity - s.TicketsTaken
}
