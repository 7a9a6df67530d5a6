package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"feedbackpro/internal/cache"
)

// RateLimitMiddleware guards public endpoints with a per-IP fixed window.
type RateLimitMiddleware struct {
	limiter cache.RateLimitCache
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter cache.RateLimitCache) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit rejects callers that exceeded the window with 429. A Redis failure
// fails open; rate limiting is protection, not a correctness requirement.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := m.limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			log.Printf("rate limit: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			http.Error(w, `{"error":"too many requests, please try again later"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the client.
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
