package entity

import (
	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Duration    int       `db:"duration"` // minutes
	Image       *string   `db:"image"`    // path relative to the media root
}

// MovieListItem is a movie with its genre names and actor full names,
// the shape list endpoints render.
type MovieListItem struct {
	Movie
	GenreNames []string
	ActorNames []string
}
