package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(user.Email) {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	cp.Email = strings.ToLower(cp.Email)
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	now    time.Time
	tokens map[string]*entity.AuthToken
}

func (r *fakeTokenRepo) Create(_ context.Context, token *entity.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) FindValid(_ context.Context, token string) (*entity.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.RevokedAt != nil || !t.ExpiresAt.After(r.now) {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := r.now
	t.RevokedAt = &now
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if !t.ExpiresAt.After(r.now) || t.RevokedAt != nil {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeTokenRepo) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	tokens := &fakeTokenRepo{now: testNow, tokens: map[string]*entity.AuthToken{}}
	repo := &repository.Repository{User: users, AuthToken: tokens}
	return NewAuthService(repo, testConfig(), clock.NewFixed(testNow), zap.NewNop()), users, tokens
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &request.RegisterRequest{
		Email:     "Ana@Example.com",
		Password:  "secret1",
		FirstName: "Ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ana@example.com" || user.IsStaff {
		t.Fatalf("unexpected user %+v", user)
	}

	tok, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "secret1"}, ClientMeta{UserAgent: "go-test"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	stored := tokens.tokens[tok.Token]
	if stored == nil || !stored.ExpiresAt.Equal(testNow.Add(24*time.Hour)) {
		t.Fatalf("token not stored with expiry: %+v", stored)
	}

	identity, err := svc.Authenticate(ctx, tok.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity.UserID.String() != user.ID || identity.Role != string(entity.RoleCustomer) {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	req := &request.RegisterRequest{Email: "dup@example.com", Password: "secret1"}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, req)
	var verr *ValidationError
	if !errors.Is(err, ErrEmailTaken) || !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email taken error, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "nope", Password: "123"})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fieldErrs["email"]; !ok {
		t.Fatalf("missing email error: %v", fieldErrs)
	}
	if _, ok := fieldErrs["password"]; !ok {
		t.Fatalf("missing password error: %v", fieldErrs)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Register(ctx, &request.RegisterRequest{Email: "bo@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name    string
		req     *request.LoginRequest
		prepare func()
		message string
	}{
		{name: "missing password", req: &request.LoginRequest{Email: "bo@example.com"}, message: msgMissingCredentials},
		{name: "missing email", req: &request.LoginRequest{Password: "secret1"}, message: msgMissingCredentials},
		{name: "wrong password", req: &request.LoginRequest{Email: "bo@example.com", Password: "secret2"}, message: msgBadCredentials},
		{name: "unknown email", req: &request.LoginRequest{Email: "zz@example.com", Password: "secret1"}, message: msgBadCredentials},
		{
			name: "inactive user",
			req:  &request.LoginRequest{Email: "bo@example.com", Password: "secret1"},
			prepare: func() {
				for _, u := range users.users {
					u.IsActive = false
				}
			},
			message: msgBadCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepare != nil {
				tt.prepare()
			}
			_, err := svc.Login(ctx, tt.req, ClientMeta{})
			var verr *ValidationError
			if !errors.Is(err, ErrInvalidCredentials) || !errors.As(err, &verr) {
				t.Fatalf("expected credentials error, got %v", err)
			}
			if verr.Field != NonField || verr.Message != tt.message {
				t.Fatalf("unexpected error %s=%q", verr.Field, verr.Message)
			}
		})
	}
}

func TestAuthLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Register(ctx, &request.RegisterRequest{Email: "cy@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tok, err := svc.Login(ctx, &request.LoginRequest{Email: "cy@example.com", Password: "secret1"}, ClientMeta{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, tok.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, tok.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("revoked token still authenticates: %v", err)
	}
	if err := svc.Logout(ctx, tok.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("second logout: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUpdateMe(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	user, err := svc.Register(ctx, &request.RegisterRequest{Email: "di@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	id := uuid.MustParse(user.ID)

	first, password := "Dina", "newsecret"
	updated, err := svc.UpdateMe(ctx, id, &request.UpdateUserRequest{FirstName: &first, Password: &password})
	if err != nil {
		t.Fatalf("UpdateMe: %v", err)
	}
	if updated.FirstName != "Dina" {
		t.Fatalf("first name not updated: %+v", updated)
	}

	if _, err := svc.Login(ctx, &request.LoginRequest{Email: "di@example.com", Password: "newsecret"}, ClientMeta{}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	if _, err := svc.Me(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestAuthCleanupExpiredTokens(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	tokens.tokens["old"] = &entity.AuthToken{Token: "old", ExpiresAt: testNow.Add(-time.Hour)}
	tokens.tokens["fresh"] = &entity.AuthToken{Token: "fresh", ExpiresAt: testNow.Add(time.Hour)}

	n, err := svc.CleanupExpiredTokens(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredTokens: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if _, ok := tokens.tokens["fresh"]; !ok {
		t.Fatal("fresh token removed")
	}
}
