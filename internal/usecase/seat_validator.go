package usecase

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
)

const seatTakenMessage = "The fields movie_session, row, seat must make a unique set."

// SeatValidator checks a requested place against the session's hall and its
// current tickets. It never writes; exclusivity under concurrency comes from
// the storage constraint and the session lock taken by the order writer.
type SeatValidator interface {
	ValidateTicket(ctx context.Context, row, seat int, session *entity.MovieSession) error
}

type seatValidator struct {
	tickets repository.TicketRepository
}

func NewSeatValidator(tickets repository.TicketRepository) SeatValidator {
	return &seatValidator{tickets: tickets}
}

// ValidateTicket checks row bounds, then seat bounds, then occupancy, and
// returns the first failure as a *ValidationError.
func (v *seatValidator) ValidateTicket(ctx context.Context, row, seat int, session *entity.MovieSession) error {
	if session == nil || session.Hall == nil {
		return fmt.Errorf("validate ticket: session without hall")
	}
	hall := session.Hall

	if err := checkRange("row", "rows", row, hall.Rows); err != nil {
		return err
	}
	if err := checkRange("seat", "seats_in_row", seat, hall.SeatsInRow); err != nil {
		return err
	}

	taken, err := v.tickets.IsPlaceTaken(ctx, session.ID, row, seat)
	if err != nil {
		return fmt.Errorf("validate ticket: %w", err)
	}
	if taken {
		return ConflictError(NonField, seatTakenMessage)
	}

	return nil
}

func checkRange(field, hallField string, value, upper int) error {
	if value >= 1 && value <= upper {
		return nil
	}
	return RangeError(field, fmt.Sprintf(
		"%s number must be in available range: (1, %s): (1, %d)", field, hallField, upper,
	))
}
