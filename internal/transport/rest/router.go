package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/handler"
	"feedbackpro/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	FormService      *service.FormService
	FeedbackService  *service.FeedbackService
	AnalyticsService *service.AnalyticsService
	AuditService     *service.AuditService
	RateLimiter      cache.RateLimitCache
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService, c.AuditService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	rateMW := middleware.NewRateLimitMiddleware(c.RateLimiter)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.Handle("/feedback", rateMW.Limit(http.HandlerFunc(feedbackHandler.Submit))).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireUser)

	ownerRoutes.HandleFunc("/forms", formHandler.Save).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/forms/{formId}/toggle", formHandler.Toggle).Methods("POST", "OPTIONS")

	ownerRoutes.HandleFunc("/feedback", feedbackHandler.List).Methods("GET", "OPTIONS")

	ownerRoutes.HandleFunc("/analytics", analyticsHandler.GetAnalytics).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/ai/insights", analyticsHandler.GetInsights).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/audit", analyticsHandler.GetAuditLog).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
