package response

import (
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
)

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ActorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type CinemaHallResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

// MovieListResponse renders genres by name and actors by full name.
type MovieListResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Image       *string  `json:"image"`
}

type MovieDetailResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
	Image       *string         `json:"image"`
}

// MovieCreatedResponse echoes the written movie with relation ids.
type MovieCreatedResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

// MovieSessionResponse is the write-side shape with plain references.
type MovieSessionResponse struct {
	ID         string    `json:"id"`
	ShowTime   time.Time `json:"show_time"`
	Movie      string    `json:"movie"`
	CinemaHall string    `json:"cinema_hall"`
}

type MovieSessionListResponse struct {
	ID                 string    `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
	TicketsAvailable   int       `json:"tickets_available"`
	MovieImage         *string   `json:"movie_image"`
}

type PlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type MovieSessionDetailResponse struct {
	ID          string             `json:"id"`
	ShowTime    time.Time          `json:"show_time"`
	Movie       MovieListResponse  `json:"movie"`
	CinemaHall  CinemaHallResponse `json:"cinema_hall"`
	TakenPlaces []PlaceResponse    `json:"taken_places"`
}

// ImageURL joins a stored image path onto the media base URL, nil when the
// movie has no image.
func ImageURL(mediaURL string, image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	url := strings.TrimSuffix(mediaURL, "/") + "/" + strings.TrimPrefix(*image, "/")
	return &url
}

// Helper converters
func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
	}
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID.String(),
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
	}
}

func CinemaHallToResponse(hall *entity.CinemaHall) CinemaHallResponse {
	return CinemaHallResponse{
		ID:         hall.ID.String(),
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	}
}

func MovieToListResponse(movie *entity.MovieListItem, mediaURL string) MovieListResponse {
	genres := movie.GenreNames
	if genres == nil {
		genres = []string{}
	}
	actors := movie.ActorNames
	if actors == nil {
		actors = []string{}
	}

	return MovieListResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
		Image:       ImageURL(mediaURL, movie.Image),
	}
}

func MovieToDetailResponse(movie *entity.Movie, genres []*entity.Genre, actors []*entity.Actor, mediaURL string) MovieDetailResponse {
	resp := MovieDetailResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      make([]GenreResponse, len(genres)),
		Actors:      make([]ActorResponse, len(actors)),
		Image:       ImageURL(mediaURL, movie.Image),
	}
	for i, g := range genres {
		resp.Genres[i] = GenreToResponse(g)
	}
	for i, a := range actors {
		resp.Actors[i] = ActorToResponse(a)
	}
	return resp
}

func MovieSessionToResponse(session *entity.MovieSession) MovieSessionResponse {
	return MovieSessionResponse{
		ID:         session.ID.String(),
		ShowTime:   session.ShowTime,
		Movie:      session.MovieID.String(),
		CinemaHall: session.CinemaHallID.String(),
	}
}

func MovieSessionToListResponse(item *entity.MovieSessionListItem, mediaURL string) MovieSessionListResponse {
	return MovieSessionListResponse{
		ID:                 item.ID.String(),
		ShowTime:           item.ShowTime,
		MovieTitle:         item.MovieTitle,
		CinemaHallName:     item.CinemaHallName,
		CinemaHallCapacity: item.CinemaHallCapacity,
		TicketsAvailable:   item.TicketsAvailable(),
		MovieImage:         ImageURL(mediaURL, item.MovieImage),
	}
}

func PlacesToResponse(places []entity.Place) []PlaceResponse {
	resp := make([]PlaceResponse, len(places))
	for i, p := range places {
		resp[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}
	return resp
}
