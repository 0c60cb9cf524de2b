package entity

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	// Tickets in insertion order
	Tickets []*Ticket `db:"-"`
}
