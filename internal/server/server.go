package server

import (
	"fmt"
	"net/http"
	"time"

	"todolist-backend/internal/auth"
	"todolist-backend/internal/config"
	"todolist-backend/internal/database"
	"todolist-backend/internal/repository"
	"todolist-backend/internal/service"
)

type Server struct {
	cfg         *config.Config
	todoService service.TodoService
	db          database.Service
	sessions    *auth.Verifier
	users       repository.UserRepository
}

// NewServer wires the HTTP surface over the injected dependencies.
func NewServer(
	cfg *config.Config,
	todoService service.TodoService,
	dbService database.Service,
	sessions *auth.Verifier,
	users repository.UserRepository,
) *http.Server {
	appServer := &Server{
		cfg:         cfg,
		todoService: todoService,
		db:          dbService,
		sessions:    sessions,
		users:       users,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
