package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.CinemaHall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CinemaHall, error)
	FindAll(ctx context.Context) ([]*entity.CinemaHall, error)
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.CinemaHall) error {
	query := `
		INSERT INTO cinema_halls (id, name, rows, seats_in_row)
		VALUES ($1, $2, $3, $4)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Rows,
		hall.SeatsInRow,
	)

	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
			zap.Int("rows", hall.Rows),
			zap.Int("seats_in_row", hall.SeatsInRow),
		)
		return fmt.Errorf("create hall %s: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CinemaHall, error) {
	query := `SELECT id, name, rows, seats_in_row FROM cinema_halls WHERE id = $1`

	var hall entity.CinemaHall
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context) ([]*entity.CinemaHall, error) {
	query := `SELECT id, name, rows, seats_in_row FROM cinema_halls ORDER BY name`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list halls", zap.Error(err))
		return nil, fmt.Errorf("list halls: %w", err)
	}
	defer rows.Close()

	halls := []*entity.CinemaHall{}
	for rows.Next() {
		var hall entity.CinemaHall
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Rows,
			&hall.SeatsInRow,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	return halls, rows.Err()
}
