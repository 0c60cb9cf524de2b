package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/clock"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

// fakeStore is an in-memory stand-in for the tables the order flow touches.
// Transactions are serialized and roll back by restoring a snapshot.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	halls    map[uuid.UUID]*entity.CinemaHall
	movies   map[uuid.UUID]*entity.Movie
	sessions map[uuid.UUID]*entity.MovieSession
	orders   []*entity.Order
	tickets  []*entity.Ticket

	lockCalls  [][]uuid.UUID
	ticketErr  error // returned by the next ticket insert when set
	orderCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		halls:    map[uuid.UUID]*entity.CinemaHall{},
		movies:   map[uuid.UUID]*entity.Movie{},
		sessions: map[uuid.UUID]*entity.MovieSession{},
	}
}

func (s *fakeStore) addSession(rows, seatsInRow int) *entity.MovieSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	hall := &entity.CinemaHall{ID: uuid.New(), Name: "Blue", Rows: rows, SeatsInRow: seatsInRow}
	movie := &entity.Movie{ID: uuid.New(), Title: "Arrival", Duration: 116}
	session := &entity.MovieSession{
		ID:           uuid.New(),
		ShowTime:     testNow.Add(48 * time.Hour),
		MovieID:      movie.ID,
		CinemaHallID: hall.ID,
		Hall:         hall,
	}
	s.halls[hall.ID] = hall
	s.movies[movie.ID] = movie
	s.sessions[session.ID] = session
	return session
}

// book stores a ticket under a fresh order, as if bought earlier.
func (s *fakeStore) book(sessionID uuid.UUID, row, seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := &entity.Order{ID: uuid.New(), UserID: uuid.New(), CreatedAt: testNow.Add(-time.Hour)}
	s.orders = append(s.orders, order)
	s.tickets = append(s.tickets, &entity.Ticket{
		ID:             uuid.New(),
		OrderID:        order.ID,
		MovieSessionID: sessionID,
		Row:            row,
		Seat:           seat,
	})
}

func (s *fakeStore) counts() (orders, tickets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), len(s.tickets)
}

type fakeSnapshot struct {
	orders  []*entity.Order
	tickets []*entity.Ticket
}

func (s *fakeStore) snapshot() fakeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fakeSnapshot{
		orders:  append([]*entity.Order(nil), s.orders...),
		tickets: append([]*entity.Ticket(nil), s.tickets...),
	}
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = snap.orders
	s.tickets = snap.tickets
}

func (s *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:           &fakeTx{s: s},
		MovieSession: &fakeSessionRepo{s: s},
		Ticket:       &fakeTicketRepo{s: s},
		Order:        &fakeOrderRepo{s: s},
	}
}

// ---- tx ----

type fakeTxKey struct{}

type fakeTx struct{ s *fakeStore }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}

	f.s.txMu.Lock()
	defer f.s.txMu.Unlock()

	snap := f.s.snapshot()
	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		f.s.restore(snap)
		return err
	}
	return nil
}

// ---- movie sessions ----

type fakeSessionRepo struct{ s *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.MovieSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.MovieSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	for _, t := range r.s.tickets {
		if t.MovieSessionID == id {
			return fmt.Errorf("delete movie session %s: %w", id, repository.ErrReferenced)
		}
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MovieSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *fakeSessionRepo) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if ctx.Value(fakeTxKey{}) == nil {
		return nil, errors.New("lock outside transaction")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lockCalls = append(r.s.lockCalls, append([]uuid.UUID(nil), ids...))

	var locked []uuid.UUID
	for _, id := range ids {
		if _, ok := r.s.sessions[id]; ok {
			locked = append(locked, id)
		}
	}
	sort.Slice(locked, func(i, j int) bool { return locked[i].String() < locked[j].String() })
	return locked, nil
}

func (r *fakeSessionRepo) listItem(session *entity.MovieSession) *entity.MovieSessionListItem {
	taken := 0
	for _, t := range r.s.tickets {
		if t.MovieSessionID == session.ID {
			taken++
		}
	}
	hall := r.s.halls[session.CinemaHallID]
	movie := r.s.movies[session.MovieID]
	return &entity.MovieSessionListItem{
		ID:                 session.ID,
		ShowTime:           session.ShowTime,
		MovieID:            movie.ID,
		MovieTitle:         movie.Title,
		MovieImage:         movie.Image,
		CinemaHallID:       hall.ID,
		CinemaHallName:     hall.Name,
		CinemaHallCapacity: hall.Capacity(),
		TicketsTaken:       taken,
	}
}

func (r *fakeSessionRepo) FindListItems(_ context.Context, filter repository.SessionFilter) ([]*entity.MovieSessionListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var items []*entity.MovieSessionListItem
	for _, session := range r.s.sessions {
		if filter.MovieID != nil && session.MovieID != *filter.MovieID {
			continue
		}
		if filter.Date != nil && session.ShowTime.Format("2006-01-02") != filter.Date.Format("2006-01-02") {
			continue
		}
		items = append(items, r.listItem(session))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ShowTime.Before(items[j].ShowTime) })
	return items, nil
}

func (r *fakeSessionRepo) FindListItemsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MovieSessionListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[uuid.UUID]*entity.MovieSessionListItem, len(ids))
	for _, id := range ids {
		if session, ok := r.s.sessions[id]; ok {
			result[id] = r.listItem(session)
		}
	}
	return result, nil
}

// ---- tickets ----

type fakeTicketRepo struct{ s *fakeStore }

func (r *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.ticketErr != nil {
		err := r.s.ticketErr
		r.s.ticketErr = nil
		return err
	}
	for _, t := range r.s.tickets {
		if t.MovieSessionID == ticket.MovieSessionID && t.Row == ticket.Row && t.Seat == ticket.Seat {
			return repository.ErrSeatTaken
		}
	}
	cp := *ticket
	r.s.tickets = append(r.s.tickets, &cp)
	return nil
}

func (r *fakeTicketRepo) IsPlaceTaken(_ context.Context, sessionID uuid.UUID, row, seat int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tickets {
		if t.MovieSessionID == sessionID && t.Row == row && t.Seat == seat {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTicketRepo) FindTakenPlaces(_ context.Context, sessionID uuid.UUID) ([]entity.Place, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	places := []entity.Place{}
	for _, t := range r.s.tickets {
		if t.MovieSessionID == sessionID {
			places = append(places, entity.Place{Row: t.Row, Seat: t.Seat})
		}
	}
	return places, nil
}

func (r *fakeTicketRepo) FindByOrderIDs(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}

	result := make(map[uuid.UUID][]*entity.Ticket)
	for _, t := range r.s.tickets {
		if wanted[t.OrderID] {
			cp := *t
			result[t.OrderID] = append(result[t.OrderID], &cp)
		}
	}
	for _, tickets := range result {
		sort.SliceStable(tickets, func(i, j int) bool { return tickets[i].Position < tickets[j].Position })
	}
	return result, nil
}

// ---- orders ----

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.orderCalls++
	cp := *order
	cp.Tickets = nil
	r.s.orders = append(r.s.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orders := []*entity.Order{}
	for _, o := range r.s.orders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// ---- collaborators ----

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, event queue.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// passValidator accepts every place, leaving exclusivity to storage.
type passValidator struct{}

func (passValidator) ValidateTicket(context.Context, int, int, *entity.MovieSession) error {
	return nil
}

type countingWriter struct {
	calls int
	next  OrderWriter
}

func (w *countingWriter) CreateOrder(ctx context.Context, userID uuid.UUID, tickets []TicketInput) (*entity.Order, error) {
	w.calls++
	return w.next.CreateOrder(ctx, userID, tickets)
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:  utils.AppConfig{MediaURL: "http://testserver/media/"},
		Auth: utils.AuthConfig{TokenExpiryHours: 24, BcryptCost: 4},
	}
}

func newTestWriter(s *fakeStore) OrderWriter {
	repo := s.repository()
	return NewOrderWriter(repo, NewSeatValidator(repo.Ticket), clock.NewFixed(testNow), zap.NewNop())
}
