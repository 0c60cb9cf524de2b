package repository

import (
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name) VALUES ($1, $2)`

	_, err := conn(ctx, r.db).Exec(ctx, query, genre.ID, genre.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create genre %s: %w", genre.Name, ErrDuplicate)
		}
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre %s: %w", genre.Name, err)
	}

	return nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id, name FROM genres ORDER BY name`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}

func (r *genreRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find genres by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find genres by movie id: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}
