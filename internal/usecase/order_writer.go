package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketInput is one requested place, already parsed.
type TicketInput struct {
	Row            int
	Seat           int
	MovieSessionID uuid.UUID
}

// OrderWriter persists an order and all its tickets as one unit.
type OrderWriter interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, tickets []TicketInput) (*entity.Order, error)
}

type orderWriter struct {
	repo      *repository.Repository
	validator SeatValidator
	clock     clock.Clock
	log       *zap.Logger
}

func NewOrderWriter(repo *repository.Repository, validator SeatValidator, clk clock.Clock, log *zap.Logger) OrderWriter {
	return &orderWriter{
		repo:      repo,
		validator: validator,
		clock:     clk,
		log:       log.With(zap.String("service", "order_writer")),
	}
}

// CreateOrder runs inside a single transaction: it locks every referenced
// session in ascending id order, inserts the order, then validates and
// inserts each ticket in input order. Any failure rolls the whole order back
// and is returned scoped to the failing ticket, e.g. "tickets[1].row".
func (w *orderWriter) CreateOrder(ctx context.Context, userID uuid.UUID, tickets []TicketInput) (*entity.Order, error) {
	if len(tickets) == 0 {
		return nil, EmptyInputError("tickets", "This list may not be empty.")
	}

	var order *entity.Order
	err := w.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		sessions, err := w.lockSessions(ctx, tickets)
		if err != nil {
			return err
		}

		o := &entity.Order{
			ID:        uuid.New(),
			UserID:    userID,
			CreatedAt: w.clock.Now(),
			Tickets:   make([]*entity.Ticket, 0, len(tickets)),
		}
		if err := w.repo.Order.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, in := range tickets {
			session, ok := sessions[in.MovieSessionID]
			if !ok {
				return unknownSessionError(i, in.MovieSessionID)
			}

			if err := w.validator.ValidateTicket(ctx, in.Row, in.Seat, session); err != nil {
				return scopeTicketError(i, err)
			}

			ticket := &entity.Ticket{
				ID:             uuid.New(),
				OrderID:        o.ID,
				MovieSessionID: in.MovieSessionID,
				Row:            in.Row,
				Seat:           in.Seat,
				Position:       i,
			}
			if err := w.repo.Ticket.Create(ctx, ticket); err != nil {
				if errors.Is(err, repository.ErrSeatTaken) {
					return ConflictError(NonField, seatTakenMessage).WithPrefix(ticketField(i))
				}
				return fmt.Errorf("create ticket %d: %w", i, err)
			}
			o.Tickets = append(o.Tickets, ticket)
		}

		order = o
		return nil
	})

	if err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// constraint surfaced at commit
			return nil, ConflictError(NonField, seatTakenMessage)
		}
		return nil, err
	}

	w.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("ticket_count", len(order.Tickets)),
	)

	return order, nil
}

// lockSessions row-locks the sessions the tickets reference and reloads them
// with their halls under the lock.
func (w *orderWriter) lockSessions(ctx context.Context, tickets []TicketInput) (map[uuid.UUID]*entity.MovieSession, error) {
	ids := distinctSessionIDs(tickets)

	locked, err := w.repo.MovieSession.LockByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lock sessions: %w", err)
	}

	sessions := make(map[uuid.UUID]*entity.MovieSession, len(locked))
	for _, id := range locked {
		session, err := w.repo.MovieSession.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load session %s: %w", id.String(), err)
		}
		if session != nil {
			sessions[id] = session
		}
	}

	return sessions, nil
}

// distinctSessionIDs returns the referenced session ids in ascending order.
func distinctSessionIDs(tickets []TicketInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(tickets))
	ids := make([]uuid.UUID, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.MovieSessionID]; ok {
			continue
		}
		seen[t.MovieSessionID] = struct{}{}
		ids = append(ids, t.MovieSessionID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func unknownSessionError(index int, id uuid.UUID) error {
	return InvalidReferenceError("movie_session",
		fmt.Sprintf("Invalid pk %q - object does not exist.", id.String()),
	).WithPrefix(ticketField(index))
}

func scopeTicketError(index int, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.WithPrefix(ticketField(index))
	}
	return err
}
