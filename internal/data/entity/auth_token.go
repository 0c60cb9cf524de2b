package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque bearer token handed out on login.
type AuthToken struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     string     `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
