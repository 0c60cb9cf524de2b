package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderListResponse, error)
}

type orderService struct {
	repo      *repository.Repository
	validator SeatValidator
	writer    OrderWriter
	publisher queue.Publisher
	mediaURL  string
	log       *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	validator SeatValidator,
	writer OrderWriter,
	publisher queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo:      repo,
		validator: validator,
		writer:    writer,
		publisher: publisher,
		mediaURL:  config.App.MediaURL,
		log:       log.With(zap.String("service", "order")),
	}
}

// CreateOrder rejects empty, malformed and self-conflicting requests before
// any transaction is opened, runs the seat validator once as a fast path and
// hands the tickets to the order writer. The order.created event is
// published after commit and its failure never fails the request.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	// 1. Empty order
	if req == nil || len(req.Tickets) == 0 {
		return nil, EmptyInputError("tickets", "This list may not be empty.")
	}

	// 2. Field validation
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	// 3. Parse and reject duplicates inside the request
	inputs, err := parseTickets(req.Tickets)
	if err != nil {
		return nil, err
	}

	// 4. Fast path check against current state
	sessions := make(map[uuid.UUID]*entity.MovieSession)
	for i, in := range inputs {
		session, ok := sessions[in.MovieSessionID]
		if !ok {
			session, err = s.repo.MovieSession.FindByID(ctx, in.MovieSessionID)
			if err != nil {
				return nil, fmt.Errorf("find session %s: %w", in.MovieSessionID.String(), err)
			}
			if session == nil {
				return nil, unknownSessionError(i, in.MovieSessionID)
			}
			sessions[in.MovieSessionID] = session
		}

		if err := s.validator.ValidateTicket(ctx, in.Row, in.Seat, session); err != nil {
			s.log.Debug("Ticket rejected before writing",
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, scopeTicketError(i, err)
		}
	}

	// 5. Atomic write
	order, err := s.writer.CreateOrder(ctx, userID, inputs)
	if err != nil {
		return nil, err
	}

	// 6. Event
	s.publishOrderCreated(ctx, order)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderListResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	ticketsByOrder, err := s.repo.Ticket.FindByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order tickets: %w", err)
	}

	var sessionIDs []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, tickets := range ticketsByOrder {
		for _, t := range tickets {
			if _, ok := seen[t.MovieSessionID]; !ok {
				seen[t.MovieSessionID] = struct{}{}
				sessionIDs = append(sessionIDs, t.MovieSessionID)
			}
		}
	}

	sessions, err := s.repo.MovieSession.FindListItemsByIDs(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("list order sessions: %w", err)
	}

	result := make([]response.OrderListResponse, 0, len(orders))
	for _, o := range orders {
		tickets := ticketsByOrder[o.ID]
		item := response.OrderListResponse{
			ID:        o.ID.String(),
			Tickets:   make([]response.TicketListResponse, 0, len(tickets)),
			CreatedAt: o.CreatedAt,
		}
		for _, t := range tickets {
			ticket := response.TicketListResponse{
				ID:   t.ID.String(),
				Row:  t.Row,
				Seat: t.Seat,
			}
			if session, ok := sessions[t.MovieSessionID]; ok {
				ticket.MovieSession = response.MovieSessionToListResponse(session, s.mediaURL)
			}
			item.Tickets = append(item.Tickets, ticket)
		}
		result = append(result, item)
	}

	return result, nil
}

// ==================== HELPER METHODS ====================

type placeKey struct {
	session uuid.UUID
	row     int
	seat    int
}

// parseTickets converts the request and rejects a place requested twice,
// reporting the later occurrence.
func parseTickets(tickets []request.TicketRequest) ([]TicketInput, error) {
	inputs := make([]TicketInput, len(tickets))
	seen := make(map[placeKey]struct{}, len(tickets))

	for i, t := range tickets {
		sessionID, err := utils.ParseUUID(t.MovieSession)
		if err != nil {
			return nil, InvalidReferenceError("movie_session", "Must be a valid UUID").WithPrefix(ticketField(i))
		}

		row, seat := derefInt(t.Row), derefInt(t.Seat)

		key := placeKey{session: sessionID, row: row, seat: seat}
		if _, dup := seen[key]; dup {
			return nil, ConflictError(NonField, seatTakenMessage).WithPrefix(ticketField(i))
		}
		seen[key] = struct{}{}

		inputs[i] = TicketInput{
			Row:            row,
			Seat:           seat,
			MovieSessionID: sessionID,
		}
	}

	return inputs, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func (s *orderService) publishOrderCreated(ctx context.Context, order *entity.Order) {
	event := queue.OrderCreatedEvent{
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   make([]queue.OrderCreatedTicket, len(order.Tickets)),
	}
	for i, t := range order.Tickets {
		event.Tickets[i] = queue.OrderCreatedTicket{
			MovieSessionID: t.MovieSessionID.String(),
			Row:            t.Row,
			Seat:           t.Seat,
		}
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishOrderCreated(pubCtx, event); err != nil {
		s.log.Warn("Failed to publish order event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
		)
	}
}
