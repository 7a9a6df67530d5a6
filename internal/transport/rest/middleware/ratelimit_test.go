package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.allowed, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLimitAllows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	handler := NewRateLimitMiddleware(limiter).Limit(okHandler())

	req := httptest.NewRequest("POST", "/v1/feedback", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if limiter.lastKey != "203.0.113.7" {
		t.Errorf("expected client IP key, got %q", limiter.lastKey)
	}
}

func TestLimitRejectsOverLimit(t *testing.T) {
	handler := NewRateLimitMiddleware(&stubLimiter{allowed: false}).Limit(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/feedback", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
}

func TestLimitFailsOpen(t *testing.T) {
	handler := NewRateLimitMiddleware(&stubLimiter{err: errors.New("redis down")}).Limit(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/feedback", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 when the limiter errors, got %d", rec.Code)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/feedback", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")

	if got := clientIP(req); got != "198.51.100.4" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}
