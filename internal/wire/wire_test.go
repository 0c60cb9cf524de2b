package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/clock"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestApp wires the router over repositories without a database; only
// requests rejected before reaching storage may be served.
func newTestApp(t *testing.T) *App {
	t.Helper()
	config := &utils.Config{}
	repo := repository.NewRepository(nil, zap.NewNop())
	service := usecase.NewService(repo, queue.NopPublisher{}, clock.NewSystem(), config, zap.NewNop())
	return Wiring(service, nil, config, zap.NewNop())
}

func TestRoutesRegistered(t *testing.T) {
	app := newTestApp(t)

	routes := map[string]bool{}
	err := chi.Walk(app.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{
		"POST /api/user/register",
		"POST /api/user/login",
		"POST /api/token-auth",
		"POST /api/user/logout",
		"GET /api/user/me",
		"PATCH /api/user/me",
		"GET /api/cinema/genres",
		"POST /api/cinema/actors",
		"GET /api/cinema/cinema_halls",
		"GET /api/cinema/movies/{id}",
		"DELETE /api/cinema/movie_sessions/{id}",
		"POST /api/cinema/orders",
		"GET /api/cinema/orders",
		"GET /health",
	}
	for _, route := range want {
		if !routes[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/api/cinema/orders", "/api/cinema/movies", "/api/user/me"} {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", target, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}
