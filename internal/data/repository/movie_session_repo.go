package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionFilter narrows the session list. Nil fields are ignored.
type SessionFilter struct {
	Date    *time.Time
	MovieID *uuid.UUID
}

type MovieSessionRepository interface {
	Create(ctx context.Context, session *entity.MovieSession) error
	Update(ctx context.Context, session *entity.MovieSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSession, error)
	LockByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	FindListItems(ctx context.Context, filter SessionFilter) ([]*entity.MovieSessionListItem, error)
	FindListItemsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MovieSessionListItem, error)
}

type movieSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieSessionRepository(db database.PgxIface, log *zap.Logger) MovieSessionRepository {
	return &movieSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_session")),
	}
}

const sessionListSelect = `
	SELECT s.id, s.show_time, m.id, m.title, m.image,
	       h.id, h.name, h.rows * h.seats_in_row,
	       (SELECT COUNT(*) FROM tickets t WHERE t.movie_session_id = s.id) AS tickets_taken
	FROM movie_sessions s
	JOIN movies m ON m.id = s.movie_id
	JOIN cinema_halls h ON h.id = s.cinema_hall_id
`

func scanSessionListItem(row pgx.Row) (*entity.MovieSessionListItem, error) {
	var item entity.MovieSessionListItem
	err := row.Scan(
		&item.ID,
		&item.ShowTime,
		&item.MovieID,
		&item.MovieTitle,
		&item.MovieImage,
		&item.CinemaHallID,
		&item.CinemaHallName,
		&item.CinemaHallCapacity,
		&item.TicketsTaken,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *movieSessionRepository) Create(ctx context.Context, session *entity.MovieSession) error {
	query := `
		INSERT INTO movie_sessions (id, show_time, movie_id, cinema_hall_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		session.ID,
		session.ShowTime,
		session.MovieID,
		session.CinemaHallID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create movie session: %w", ErrInvalidReference)
		}
		r.log.Error("Failed to create movie session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("cinema_hall_id", session.CinemaHallID.String()),
		)
		return fmt.Errorf("create movie session: %w", err)
	}

	return nil
}

func (r *movieSessionRepository) Update(ctx context.Context, session *entity.MovieSession) error {
	query := `
		UPDATE movie_sessions
		SET show_time = $2, movie_id = $3, cinema_hall_id = $4
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		session.ID,
		session.ShowTime,
		session.MovieID,
		session.CinemaHallID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update movie session %s: %w", session.ID.String(), ErrInvalidReference)
		}
		r.log.Error("Failed to update movie session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return fmt.Errorf("update movie session %s: %w", session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie session %s: %w", session.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *movieSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movie_sessions WHERE id = $1`

	result, err := conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete movie session %s: %w", id.String(), ErrReferenced)
		}
		r.log.Error("Failed to delete movie session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("delete movie session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie session %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie session deleted", zap.String("session_id", id.String()))
	return nil
}

// FindByID loads the session together with its hall
func (r *movieSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSession, error) {
	query := `
		SELECT s.id, s.show_time, s.movie_id, s.cinema_hall_id,
		       h.id, h.name, h.rows, h.seats_in_row
		FROM movie_sessions s
		JOIN cinema_halls h ON h.id = s.cinema_hall_id
		WHERE s.id = $1
	`

	var session entity.MovieSession
	var hall entity.CinemaHall
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ShowTime,
		&session.MovieID,
		&session.CinemaHallID,
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find movie session by ID %s: %w", id.String(), err)
	}

	session.Hall = &hall
	return &session, nil
}

// LockByIDs takes row locks on the given sessions in ascending id order and
// returns the ids that exist. Must run inside a transaction; concurrent
// orders touching the same session serialize here.
func (r *movieSessionRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if txFromContext(ctx) == nil {
		return nil, fmt.Errorf("lock movie sessions: no transaction in context")
	}

	query := `
		SELECT id FROM movie_sessions
		WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, utils.UUIDStrings(ids))
	if err != nil {
		r.log.Error("Failed to lock movie sessions", zap.Error(err))
		return nil, fmt.Errorf("lock movie sessions: %w", err)
	}
	defer rows.Close()

	locked := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan locked session id: %w", err)
		}
		locked = append(locked, id)
	}

	return locked, rows.Err()
}

func (r *movieSessionRepository) FindListItems(ctx context.Context, filter SessionFilter) ([]*entity.MovieSessionListItem, error) {
	var where []string
	var args []any
	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		where = append(where, fmt.Sprintf("s.show_time::date = $%d::date", len(args)))
	}
	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		where = append(where, fmt.Sprintf("s.movie_id = $%d", len(args)))
	}

	query := sessionListSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.show_time"

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list movie sessions", zap.Error(err))
		return nil, fmt.Errorf("list movie sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*entity.MovieSessionListItem{}
	for rows.Next() {
		item, err := scanSessionListItem(rows)
		if err != nil {
			r.log.Error("Failed to scan movie session row", zap.Error(err))
			return nil, fmt.Errorf("scan movie session row: %w", err)
		}
		sessions = append(sessions, item)
	}

	return sessions, rows.Err()
}

func (r *movieSessionRepository) FindListItemsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MovieSessionListItem, error) {
	result := make(map[uuid.UUID]*entity.MovieSessionListItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := sessionListSelect + ` WHERE s.id = ANY($1::uuid[])`

	rows, err := conn(ctx, r.db).Query(ctx, query, utils.UUIDStrings(ids))
	if err != nil {
		r.log.Error("Failed to find movie sessions by IDs", zap.Error(err))
		return nil, fmt.Errorf("find movie sessions by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanSessionListItem(rows)
		if err != nil {
			r.log.Error("Failed to scan movie session row", zap.Error(err))
			return nil, fmt.Errorf("scan movie session row: %w", err)
		}
		result[item.ID] = item
	}

	return result, rows.Err()
}
