package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/clock"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgMissingCredentials = `Must include "email" and "password".`
	msgBadCredentials     = "Unable to log in with provided credentials."
)

// ClientMeta describes where a login came from.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*utils.Identity, error)
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Logout(ctx context.Context, token string) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	clock  clock.Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	clk clock.Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	// 2. Cek email sudah terdaftar
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, emailTakenError()
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	now := s.clock.Now()
	user := &entity.User{
		BaseTimestamps: entity.BaseTimestamps{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.TokenResponse, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, credentialsError(msgMissingCredentials)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown email, wrong password and inactive accounts look the same
	if user == nil || !user.IsActive || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("email", req.Email))
		return nil, credentialsError(msgBadCredentials)
	}

	now := s.clock.Now()
	token := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateToken(),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.Auth.TokenExpiryHours) * time.Hour),
	}

	if err := s.repo.AuthToken.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.TokenResponse{Token: token.Token}, nil
}

// Authenticate resolves a raw token to the caller identity.
func (s *authService) Authenticate(ctx context.Context, token string) (*utils.Identity, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}

	t, err := s.repo.AuthToken.FindValid(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	if t == nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, fmt.Errorf("find token user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return &utils.Identity{
		UserID: user.ID,
		Role:   string(user.Role),
		Token:  token,
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, FieldErrors(errs)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, s.config.Auth.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.AuthToken.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("revoke token: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.repo.AuthToken.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup tokens: %w", err)
	}
	if n > 0 {
		s.log.Info("Expired tokens removed", zap.Int64("count", n))
	}
	return n, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
