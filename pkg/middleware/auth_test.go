package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubAuth struct {
	identities map[string]utils.Identity
	err        error
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*utils.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	id, ok := s.identities[token]
	if !ok {
		return nil, usecase.ErrInvalidCredentials
	}
	return &id, nil
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthToken(t *testing.T) {
	userID := uuid.New()
	auth := stubAuth{identities: map[string]utils.Identity{
		"good": {UserID: userID, Role: "customer", Token: "good"},
	}}

	var seen utils.Identity
	handler := AuthToken(auth, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "no key", header: "Token", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Token nope", want: http.StatusUnauthorized},
		{name: "token scheme", header: "Token good", want: http.StatusOK},
		{name: "bearer scheme", header: "Bearer good", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = utils.Identity{}
			req := httptest.NewRequest(http.MethodGet, "/api/cinema/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if tt.want == http.StatusOK && seen.UserID != userID {
				t.Fatalf("identity not in context: %+v", seen)
			}
		})
	}
}

func TestAuthTokenBackendFailure(t *testing.T) {
	handler := AuthToken(stubAuth{err: errors.New("db down")}, zap.NewNop())(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token any")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	handler := AdminOrReadOnly(zap.NewNop())(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		method string
		role   string
		want   int
	}{
		{name: "customer reads", method: http.MethodGet, role: "customer", want: http.StatusOK},
		{name: "customer writes", method: http.MethodPost, role: "customer", want: http.StatusForbidden},
		{name: "admin writes", method: http.MethodPost, role: "admin", want: http.StatusOK},
		{name: "admin deletes", method: http.MethodDelete, role: "admin", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/cinema/genres", nil)
			req = req.WithContext(utils.SetIdentity(req.Context(), utils.Identity{UserID: uuid.New(), Role: tt.role}))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAdminWithoutIdentity(t *testing.T) {
	handler := Admin(zap.NewNop())(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
