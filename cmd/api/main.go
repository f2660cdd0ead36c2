package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-resume-backend/config"
	_ "go-resume-backend/docs" // Important for Swagger
	v1 "go-resume-backend/internal/delivery/http/v1"
	"go-resume-backend/internal/repository/postgres"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/auth"
	"go-resume-backend/pkg/database"
	"go-resume-backend/pkg/logger"
	"go-resume-backend/pkg/redis"

	"github.com/getsentry/sentry-go"
)

// @title           Tweet Resume API
// @version         1.0
// @description     Backend for public tweet-resume profiles. Clean Architecture over Postgres.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting resume backend", "port", cfg.Port)

	// 3. Setup Sentry (optional)
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			logger.Log.Warn("Sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Log.Info("Database connection established")

	// 5. Setup Redis (optional; cache and rate limiting fall back without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 6. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)

	// 7. Setup UseCases
	profileUC := usecase.NewProfileUsecase(profileRepo, resumeRepo)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, profileRepo)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 8. Setup Auth Provider (Clerk JWKS)
	jwksProvider := auth.NewProvider(cfg.ClerkJWKSURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:    profileUC,
		ResumeUC:     resumeUC,
		HealthUC:     healthUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
