package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthTokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	FindValid(ctx context.Context, token string) (*entity.AuthToken, error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type authTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuthTokenRepository(db database.PgxIface, log *zap.Logger) AuthTokenRepository {
	return &authTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_token")),
	}
}

func (r *authTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token, user_agent, ip_address,
		                         expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.UserAgent,
		token.IPAddress,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token: %w", err)
	}

	return nil
}

// FindValid returns nil when the token is unknown, revoked or expired
func (r *authTokenRepository) FindValid(ctx context.Context, token string) (*entity.AuthToken, error) {
	query := `
		SELECT id, user_id, token, user_agent, ip_address,
		       expires_at, revoked_at, created_at
		FROM auth_tokens
		WHERE token = $1
		  AND revoked_at IS NULL
		  AND expires_at > NOW()
	`

	var t entity.AuthToken
	err := conn(ctx, r.db).QueryRow(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.UserAgent,
		&t.IPAddress,
		&t.ExpiresAt,
		&t.RevokedAt,
		&t.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &t, nil
}

func (r *authTokenRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE auth_tokens
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := conn(ctx, r.db).Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke auth token", zap.Error(err))
		return fmt.Errorf("revoke auth token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth token: %w", ErrNotFound)
	}

	return nil
}

// DeleteExpired removes tokens that expired or were revoked more than a week ago.
func (r *authTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM auth_tokens
		WHERE expires_at < NOW() - INTERVAL '7 days'
		   OR revoked_at < NOW() - INTERVAL '7 days'
	`

	result, err := conn(ctx, r.db).Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete expired auth tokens", zap.Error(err))
		return 0, fmt.Errorf("delete expired auth tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
