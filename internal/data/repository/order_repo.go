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

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// Create inserts the order row only; tickets go through TicketRepository
// in the same transaction.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`

	_, err := conn(ctx, r.db).Exec(ctx, query, order.ID, order.UserID, order.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create order: %w", ErrInvalidReference)
		}
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order for user %s: %w", order.UserID.String(), err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT id, user_id, created_at FROM orders WHERE id = $1`

	var order entity.Order
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&order.ID, &order.UserID, &order.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

// FindByUserID returns the user's orders newest first, without tickets.
func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find orders by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		var order entity.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}
