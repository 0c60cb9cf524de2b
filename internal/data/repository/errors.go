package repository

import "errors"

const ticketSeatConstraint = "tickets_session_row_seat_key"

var (
	// ErrSeatTaken reports a write rejected by the (movie_session, row, seat)
	// unique constraint.
	ErrSeatTaken = errors.New("seat already taken")

	ErrDuplicate        = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced row does not exist")
	ErrNotFound         = errors.New("not found")
	// ErrReferenced reports a delete blocked by rows that still point at the target.
	ErrReferenced = errors.New("still referenced")
)
