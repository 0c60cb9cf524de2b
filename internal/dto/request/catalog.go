package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type ActorRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
}

type CinemaHallRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Rows       int    `json:"rows" validate:"required,min=1"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,min=1"`
}

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Genres      []string `json:"genres" validate:"dive,uuid"`
	Actors      []string `json:"actors" validate:"dive,uuid"`
}

// MovieSessionRequest is used for create and full update.
type MovieSessionRequest struct {
	ShowTime   string `json:"show_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Movie      string `json:"movie" validate:"required,uuid"`
	CinemaHall string `json:"cinema_hall" validate:"required,uuid"`
}

// SessionListQuery holds the raw query parameters of the session list.
type SessionListQuery struct {
	Date  string
	Movie string
}
