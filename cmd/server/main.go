package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/config"
	"feedbackpro/internal/repository"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Model:    %s", aiConfig.Model)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured ✓")
	} else {
		log.Println("  API Key:  NOT SET (using deterministic fallback classifier)")
	}

	// MongoDB connection
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/feedbackpro"
		log.Println("Warning: MONGO_URI not set, using default")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("feedbackpro")

	// Redis connection
	redisAddr := os.Getenv("REDIS_URI")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
		log.Println("Warning: REDIS_URI not set, using default")
	}
	redisAddr = strings.TrimPrefix(redisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	feedbackRepo := repository.NewFeedbackRepo(db)
	formRepo := repository.NewFormRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Initialize rate limiter
	rateLimiter := cache.NewRateLimitCache(rdb, 15*time.Minute, 100)

	// Initialize services
	authSvc := service.NewAuthService()
	auditSvc := service.NewAuditService(auditRepo)
	classifier := service.NewSentimentClassifierWithConfig(aiConfig)
	enricher := service.NewFeedbackEnricher(feedbackRepo, classifier)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, formRepo, auditSvc)
	formSvc := service.NewFormService(formRepo, auditSvc)
	analyticsSvc := service.NewAnalyticsService(feedbackRepo, formRepo, enricher, auditSvc)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		FormService:      formSvc,
		FeedbackService:  feedbackSvc,
		AnalyticsService: analyticsSvc,
		AuditService:     auditSvc,
		RateLimiter:      rateLimiter,
	}

	router := rest.NewRouter(container)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/feedback (public)")
		log.Println("  GET  /v1/feedback")
		log.Println("  POST/GET /v1/forms")
		log.Println("  GET  /v1/analytics")
		log.Println("  GET  /v1/ai/insights")
		log.Println("  GET  /v1/audit")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
