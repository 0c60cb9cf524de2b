package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"cinema-ticketing/pkg/cache"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "cinema:cache:"

// captureWriter copies the response body while forwarding it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cacheKey groups entries by resource so a write can drop them all.
func cacheKey(resource string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s%s:%x", cacheKeyPrefix, resource, sum[:])
}

func resourcePrefix(resource string) string {
	return cacheKeyPrefix + resource + ":"
}

// Cache serves successful GET responses of a catalog resource from the
// store. Writes that succeed drop every cached entry of that resource.
// A nil store disables caching.
func Cache(store cache.Store, resource string, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(cw, r)

				if cw.status < 300 {
					// detached so a client disconnect cannot leave stale entries
					ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), time.Second)
					defer cancel()
					if err := store.DeletePrefix(ctx, resourcePrefix(resource)); err != nil {
						logger.Warn("Cache invalidation failed",
							zap.String("resource", resource),
							zap.Error(err))
					}
				}
				return
			}

			key := cacheKey(resource, r)

			if body, err := store.Get(r.Context(), key); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK {
				if err := store.Set(r.Context(), key, cw.buf.Bytes(), ttl); err != nil {
					logger.Warn("Cache write failed",
						zap.String("resource", resource),
						zap.Error(err))
				}
			}
		})
	}
}
