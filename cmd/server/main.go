package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/fritter/backend/internal/handlers"
	"github.com/anonto42/fritter/backend/internal/metrics"
	"github.com/anonto42/fritter/backend/internal/repositories"
	"github.com/anonto42/fritter/backend/internal/router"
	"github.com/anonto42/fritter/backend/internal/validators"
	"github.com/anonto42/fritter/backend/pkg/config"
	"github.com/anonto42/fritter/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase login is optional
	var firebaseAuth handlers.TokenVerifier
	firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
	switch {
	case errors.Is(err, firebase.ErrNotConfigured):
	case err != nil:
		log.Fatalf("Failed to initialize Firebase: %v", err)
	default:
		firebaseAuth = firebaseApp.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, cfg)

	router.SetupRoutes(e, router.Repositories{
		Users:     repositories.NewPostgresUserRepository(db.Postgres),
		Follows:   repositories.NewMongoFollowRepository(db.MongoDB),
		Freets:    repositories.NewMongoFreetRepository(db.MongoDB),
		Profiles:  repositories.NewMongoProfileRepository(db.MongoDB),
		Bookmarks: repositories.NewMongoBookmarkRepository(db.MongoDB),
		Tags:      repositories.NewMongoTagRepository(db.MongoDB),
	}, cfg.JWTSecret, firebaseAuth)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("Metrics listening on :%s", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Printf("Metrics shutdown error: %v", err)
	}
}
