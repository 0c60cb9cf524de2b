package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is what the auth middleware knows about the caller.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Token  string
}

func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := GetIdentity(ctx)
	return id.UserID, ok
}

// GetTokenFromContext returns the raw token the request authenticated with
func GetTokenFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	if !ok || id.Token == "" {
		return "", false
	}
	return id.Token, true
}
