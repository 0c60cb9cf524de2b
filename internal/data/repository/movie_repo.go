package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	AddGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error
	AddActors(ctx context.Context, movieID uuid.UUID, actorIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindListItemByID(ctx context.Context, id uuid.UUID) (*entity.MovieListItem, error)
	FindAllListItems(ctx context.Context) ([]*entity.MovieListItem, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieListSelect = `
	SELECT m.id, m.title, m.description, m.duration, m.image,
	       ARRAY(SELECT g.name FROM genres g
	             JOIN movie_genres mg ON mg.genre_id = g.id
	             WHERE mg.movie_id = m.id ORDER BY g.name) AS genre_names,
	       ARRAY(SELECT a.first_name || ' ' || a.last_name FROM actors a
	             JOIN movie_actors ma ON ma.actor_id = a.id
	             WHERE ma.movie_id = m.id ORDER BY a.last_name, a.first_name) AS actor_names
	FROM movies m
`

func scanMovieListItem(row pgx.Row) (*entity.MovieListItem, error) {
	var item entity.MovieListItem
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Duration,
		&item.Image,
		&item.GenreNames,
		&item.ActorNames,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, duration, image)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Duration,
		movie.Image,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

// AddGenres links genres to a movie. Unknown genre ids fail with ErrInvalidReference.
func (r *movieRepository) AddGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO movie_genres (movie_id, genre_id)
		SELECT $1, g FROM unnest($2::uuid[]) AS g
		ON CONFLICT DO NOTHING
	`

	if _, err := conn(ctx, r.db).Exec(ctx, query, movieID, utils.UUIDStrings(genreIDs)); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("add genres to movie %s: %w", movieID.String(), ErrInvalidReference)
		}
		r.log.Error("Failed to add movie genres",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("add genres to movie %s: %w", movieID.String(), err)
	}

	return nil
}

// AddActors links actors to a movie. Unknown actor ids fail with ErrInvalidReference.
func (r *movieRepository) AddActors(ctx context.Context, movieID uuid.UUID, actorIDs []uuid.UUID) error {
	if len(actorIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO movie_actors (movie_id, actor_id)
		SELECT $1, a FROM unnest($2::uuid[]) AS a
		ON CONFLICT DO NOTHING
	`

	if _, err := conn(ctx, r.db).Exec(ctx, query, movieID, utils.UUIDStrings(actorIDs)); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("add actors to movie %s: %w", movieID.String(), ErrInvalidReference)
		}
		r.log.Error("Failed to add movie actors",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("add actors to movie %s: %w", movieID.String(), err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT id, title, description, duration, image FROM movies WHERE id = $1`

	var movie entity.Movie
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.Image,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindListItemByID(ctx context.Context, id uuid.UUID) (*entity.MovieListItem, error) {
	query := movieListSelect + ` WHERE m.id = $1`

	item, err := scanMovieListItem(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie list item",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *movieRepository) FindAllListItems(ctx context.Context) ([]*entity.MovieListItem, error) {
	query := movieListSelect + ` ORDER BY m.title`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.MovieListItem{}
	for rows.Next() {
		item, err := scanMovieListItem(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, item)
	}

	return movies, rows.Err()
}
