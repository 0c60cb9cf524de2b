package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
)

func TestValidateTicketExamples(t *testing.T) {
	store := newFakeStore()
	session := store.addSession(10, 15)
	store.book(session.ID, 5, 5)
	validator := NewSeatValidator(store.repository().Ticket)

	tests := []struct {
		name        string
		row, seat   int
		wantKind    error
		wantField   string
		wantMention []string
	}{
		{name: "row above hall", row: 11, seat: 1, wantKind: ErrOutOfRange, wantField: "row", wantMention: []string{"rows", "10"}},
		{name: "row zero", row: 0, seat: 1, wantKind: ErrOutOfRange, wantField: "row", wantMention: []string{"rows"}},
		{name: "seat above row", row: 5, seat: 16, wantKind: ErrOutOfRange, wantField: "seat", wantMention: []string{"seats_in_row", "15"}},
		{name: "negative seat", row: 5, seat: -1, wantKind: ErrOutOfRange, wantField: "seat", wantMention: []string{"seats_in_row"}},
		{name: "seat taken", row: 5, seat: 5, wantKind: ErrSeatTaken, wantField: NonField},
		{name: "free seat", row: 5, seat: 6},
		{name: "corner seat", row: 10, seat: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTicket(context.Background(), tt.row, tt.seat, session)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("expected field %q, got %q", tt.wantField, verr.Field)
			}
			for _, m := range tt.wantMention {
				if !strings.Contains(verr.Message, m) {
					t.Fatalf("message %q does not mention %q", verr.Message, m)
				}
			}
		})
	}
}

func TestValidateTicketRangeMessage(t *testing.T) {
	store := newFakeStore()
	session := store.addSession(10, 15)
	validator := NewSeatValidator(store.repository().Ticket)

	err := validator.ValidateTicket(context.Background(), 11, 1, session)
	want := "row number must be in available range: (1, rows): (1, 10)"
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}

func TestValidateTicketChecksRowBeforeSeat(t *testing.T) {
	store := newFakeStore()
	session := store.addSession(3, 3)
	validator := NewSeatValidator(store.repository().Ticket)

	err := validator.ValidateTicket(context.Background(), 4, 4, session)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "row" {
		t.Fatalf("expected row error first, got %v", err)
	}
}

func TestValidateTicketSucceedsIffInsideGridAndFree(t *testing.T) {
	const rows, seats = 4, 6
	store := newFakeStore()
	session := store.addSession(rows, seats)
	taken := map[entity.Place]bool{{Row: 1, Seat: 1}: true, {Row: 2, Seat: 6}: true, {Row: 4, Seat: 3}: true}
	for p := range taken {
		store.book(session.ID, p.Row, p.Seat)
	}
	// a ticket on another session must not block this one
	other := store.addSession(rows, seats)
	store.book(other.ID, 3, 3)

	validator := NewSeatValidator(store.repository().Ticket)

	for row := -1; row <= rows+1; row++ {
		for seat := -1; seat <= seats+1; seat++ {
			inside := row >= 1 && row <= rows && seat >= 1 && seat <= seats
			want := inside && !taken[entity.Place{Row: row, Seat: seat}]

			err := validator.ValidateTicket(context.Background(), row, seat, session)
			if got := err == nil; got != want {
				t.Fatalf("row=%d seat=%d: success=%v, want %v (err=%v)", row, seat, got, want, err)
			}
		}
	}
}

func TestValidateTicketFailureIsIdempotent(t *testing.T) {
	store := newFakeStore()
	session := store.addSession(10, 15)
	store.book(session.ID, 3, 4)
	validator := NewSeatValidator(store.repository().Ticket)

	_, ticketsBefore := store.counts()

	first := validator.ValidateTicket(context.Background(), 3, 4, session)
	second := validator.ValidateTicket(context.Background(), 3, 4, session)

	if !errors.Is(first, ErrSeatTaken) || !errors.Is(second, ErrSeatTaken) {
		t.Fatalf("expected conflict twice, got %v and %v", first, second)
	}
	if first.Error() != second.Error() {
		t.Fatalf("errors differ: %q vs %q", first, second)
	}
	if _, ticketsAfter := store.counts(); ticketsAfter != ticketsBefore {
		t.Fatalf("validation changed ticket count from %d to %d", ticketsBefore, ticketsAfter)
	}
}

func TestValidateTicketRequiresHall(t *testing.T) {
	validator := NewSeatValidator(newFakeStore().repository().Ticket)

	err := validator.ValidateTicket(context.Background(), 1, 1, &entity.MovieSession{ID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for session without hall")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("missing hall must not look like a client error, got %v", verr)
	}
}
