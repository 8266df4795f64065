package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_UnlimitedGeneral(t *testing.T) {
	// generalRPM <= 0 means no general limit; auth stays limited.
	mw := NewRateLimitMiddleware(0, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddleware_LimitedAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Burst of 1: the first login attempt consumes the token, the second is
	// rejected immediately.
	req1 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestRateLimitMiddleware_PerClientBuckets(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A different client keeps its own budget.
	second := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_SweepsIdleClients(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mw.now = func() time.Time { return at }

	mw.getLimiter("10.0.0.1")

	// Idle past the cutoff; the next lookup sweeps the stale bucket.
	at = at.Add(11 * time.Minute)
	mw.getLimiter("10.0.0.2")

	mw.mu.Lock()
	defer mw.mu.Unlock()
	assert.NotContains(t, mw.clients, "10.0.0.1")
	assert.Contains(t, mw.clients, "10.0.0.2")
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4711"
	assert.Equal(t, "192.0.2.7", ExtractClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 192.0.2.7")
	assert.Equal(t, "203.0.113.5", ExtractClientIP(req))
}
