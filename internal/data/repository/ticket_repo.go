package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	IsPlaceTaken(ctx context.Context, sessionID uuid.UUID, row, seat int) (bool, error)
	FindTakenPlaces(ctx context.Context, sessionID uuid.UUID) ([]entity.Place, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

// Create inserts a ticket. A place already held in the session fails with
// ErrSeatTaken through the tickets_session_row_seat_key constraint.
func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, order_id, movie_session_id, "row", seat, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		ticket.ID,
		ticket.OrderID,
		ticket.MovieSessionID,
		ticket.Row,
		ticket.Seat,
		ticket.Position,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create ticket: %w", ErrInvalidReference)
		}
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("order_id", ticket.OrderID.String()),
			zap.String("session_id", ticket.MovieSessionID.String()),
			zap.Int("row", ticket.Row),
			zap.Int("seat", ticket.Seat),
		)
		return fmt.Errorf("create ticket for order %s: %w", ticket.OrderID.String(), err)
	}

	return nil
}

func (r *ticketRepository) IsPlaceTaken(ctx context.Context, sessionID uuid.UUID, row, seat int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tickets
			WHERE movie_session_id = $1 AND "row" = $2 AND seat = $3
		)
	`

	var taken bool
	if err := conn(ctx, r.db).QueryRow(ctx, query, sessionID, row, seat).Scan(&taken); err != nil {
		r.log.Error("Failed to check place",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
			zap.Int("row", row),
			zap.Int("seat", seat),
		)
		return false, fmt.Errorf("check place %d/%d in session %s: %w", row, seat, sessionID.String(), err)
	}

	return taken, nil
}

func (r *ticketRepository) FindTakenPlaces(ctx context.Context, sessionID uuid.UUID) ([]entity.Place, error) {
	query := `
		SELECT "row", seat FROM tickets
		WHERE movie_session_id = $1
		ORDER BY "row", seat
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find taken places",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find taken places for session %s: %w", sessionID.String(), err)
	}
	defer rows.Close()

	places := []entity.Place{}
	for rows.Next() {
		var p entity.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			r.log.Error("Failed to scan place row", zap.Error(err))
			return nil, fmt.Errorf("scan place row: %w", err)
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

// FindByOrderIDs groups tickets by order, each group in insertion order.
func (r *ticketRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error) {
	result := make(map[uuid.UUID][]*entity.Ticket, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, order_id, movie_session_id, "row", seat, position
		FROM tickets
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, utils.UUIDStrings(orderIDs))
	if err != nil {
		r.log.Error("Failed to find tickets by order IDs", zap.Error(err))
		return nil, fmt.Errorf("find tickets by order IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Ticket
		err := rows.Scan(
			&t.ID,
			&t.OrderID,
			&t.MovieSessionID,
			&t.Row,
			&t.Seat,
			&t.Position,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		result[t.OrderID] = append(result[t.OrderID], &t)
	}

	return result, rows.Err()
}
