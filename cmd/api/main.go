package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todolist-backend/internal/auth"
	"todolist-backend/internal/config"
	"todolist-backend/internal/database"
	"todolist-backend/internal/domain"
	"todolist-backend/internal/ratelimit"
	"todolist-backend/internal/repository"
	"todolist-backend/internal/server"
	"todolist-backend/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight requests get 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		log.Println("Closing database connection pool...")
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		} else {
			log.Println("Database connection pool closed.")
		}
	}

	log.Println("Server exiting")

	done <- true
}

func main() {
	// Fail fast on misconfiguration before touching the network.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	dbService, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	gormDB := dbService.GetDB()

	log.Println("Running database auto-migration...")
	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Todo{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}
	log.Println("Database auto-migration complete.")

	todoRepo := repository.NewGormTodoRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	createLimiter := ratelimit.NewSlidingWindow(cfg.RateLimitCreates, cfg.RateLimitWindow)
	sessions := auth.NewVerifier(cfg.SessionSecret)

	todoService := service.NewTodoService(todoRepo, createLimiter)

	apiServer := server.NewServer(cfg, todoService, dbService, sessions, userRepo)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
