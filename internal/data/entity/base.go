package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseTimestamps is embedded by rows that track creation and update time.
type BaseTimestamps struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
