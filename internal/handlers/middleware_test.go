package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:")
}

func TestRateLimiterBlocksRepeatRequests(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "203.0.113.9:4242"

	first := httptest.NewRecorder()
	handler(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimiterIsPerAddress(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRequest(http.MethodPost, "/contact", nil)
	first.RemoteAddr = "203.0.113.9:4242"
	handler(httptest.NewRecorder(), first)

	other := httptest.NewRequest(http.MethodPost, "/contact", nil)
	other.RemoteAddr = "198.51.100.7:4242"
	rec := httptest.NewRecorder()
	handler(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
