package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type txKey struct{}

// TxManager runs a function inside a database transaction. Repositories
// called with the ctx passed to fn take part in that transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTxManager(db database.PgxIface, log *zap.Logger) TxManager {
	return &txManager{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
}

// WithTx commits when fn returns nil and rolls back otherwise. A nested call
// joins the outer transaction.
func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// conn picks the transaction from ctx when there is one.
func conn(ctx context.Context, db database.Querier) database.Querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == ticketSeatConstraint {
		return ErrSeatTaken
	}
	return fmt.Errorf("%w: %v", ErrDuplicate, err)
}
