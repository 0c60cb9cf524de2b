package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/pkg/cache"

	"go.uber.org/zap"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func TestCacheHitMissAndInvalidate(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Cache(store, "genres", time.Minute, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true}`))
	}))

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cinema/genres", nil))
		return rec
	}

	if rec := get(); rec.Header().Get("X-Cache") != "MISS" || calls != 1 {
		t.Fatalf("first GET: X-Cache=%q calls=%d", rec.Header().Get("X-Cache"), calls)
	}
	rec := get()
	if rec.Header().Get("X-Cache") != "HIT" || calls != 1 {
		t.Fatalf("second GET: X-Cache=%q calls=%d", rec.Header().Get("X-Cache"), calls)
	}
	if rec.Body.String() != `{"status":true}` {
		t.Fatalf("cached body mismatch: %q", rec.Body.String())
	}

	post := httptest.NewRecorder()
	handler.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/api/cinema/genres", nil))
	if post.Code != http.StatusCreated {
		t.Fatalf("POST: %d", post.Code)
	}

	if rec := get(); rec.Header().Get("X-Cache") != "MISS" || calls != 3 {
		t.Fatalf("GET after write: X-Cache=%q calls=%d", rec.Header().Get("X-Cache"), calls)
	}
}

func TestCacheSkipsErrors(t *testing.T) {
	store := newMemoryStore()
	handler := Cache(store, "movies", time.Minute, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cinema/movies", nil))

	if len(store.data) != 0 {
		t.Fatalf("error response was cached")
	}
}

func TestCacheNilStorePassesThrough(t *testing.T) {
	handler := Cache(nil, "halls", time.Minute, zap.NewNop())(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cinema/cinema_halls", nil))

	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
		t.Fatalf("unexpected passthrough response %d %q", rec.Code, rec.Header().Get("X-Cache"))
	}
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	a := cacheKey("movies", httptest.NewRequest(http.MethodGet, "/api/cinema/movies?x=1", nil))
	b := cacheKey("movies", httptest.NewRequest(http.MethodGet, "/api/cinema/movies?x=2", nil))
	if a == b {
		t.Fatal("query ignored in cache key")
	}
	if !strings.HasPrefix(a, resourcePrefix("movies")) {
		t.Fatalf("key %q outside resource prefix", a)
	}
}
