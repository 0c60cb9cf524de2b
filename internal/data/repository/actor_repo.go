package repository

import (
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindAll(ctx context.Context) ([]*entity.Actor, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Actor, error)
}

type actorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActorRepository(db database.PgxIface, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `INSERT INTO actors (id, first_name, last_name) VALUES ($1, $2, $3)`

	_, err := conn(ctx, r.db).Exec(ctx, query, actor.ID, actor.FirstName, actor.LastName)
	if err != nil {
		r.log.Error("Failed to create actor",
			zap.Error(err),
			zap.String("full_name", actor.FullName()),
		)
		return fmt.Errorf("create actor %s: %w", actor.FullName(), err)
	}

	return nil
}

func (r *actorRepository) FindAll(ctx context.Context) ([]*entity.Actor, error) {
	query := `SELECT id, first_name, last_name FROM actors ORDER BY last_name, first_name`
	return r.list(ctx, query)
}

func (r *actorRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Actor, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name
		FROM actors a
		INNER JOIN movie_actors ma ON a.id = ma.actor_id
		WHERE ma.movie_id = $1
		ORDER BY a.last_name, a.first_name
	`
	return r.list(ctx, query, movieID)
}

func (r *actorRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Actor, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list actors", zap.Error(err))
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	actors := []*entity.Actor{}
	for rows.Next() {
		var actor entity.Actor
		if err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName); err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, &actor)
	}

	return actors, rows.Err()
}
