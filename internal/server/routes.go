package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"todolist-backend/internal/auth"
	"todolist-backend/internal/domain"
	"todolist-backend/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)
	r.Get("/health", s.healthHandler)

	// Everything below requires a resolved session.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(s.sessions, s.users))

		r.Get("/me", s.meHandler)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", s.listTodosHandler)
			r.Post("/", s.createTodoHandler)
			r.Patch("/{id}", s.updateTodoHandler)
			r.Delete("/{id}", s.deleteTodoHandler)
		})
	})

	return r
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World from Todolist Backend!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	order, err := domain.ParseSortOrder(r.URL.Query().Get("order"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	todos, err := s.todoService.ListTodos(r.Context(), order)
	if err != nil {
		s.respondServiceError(w, err, "Failed to retrieve todos")
		return
	}

	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&req)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			respondWithError(w, http.StatusBadRequest, msg)
		case errors.Is(err, io.ErrUnexpectedEOF):
			respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			respondWithError(w, http.StatusBadRequest, msg)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
		case errors.Is(err, io.EOF):
			respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
		default:
			log.Printf("Error decoding create todo request: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Error processing request")
		}
		return
	}

	todoResp, err := s.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err, "Failed to create todo")
		return
	}

	respondWithJSON(w, http.StatusCreated, todoResp)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpdateTodoRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		log.Printf("Error decoding update todo request: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.todoService.UpdateTodo(r.Context(), id, req); err != nil {
		s.respondServiceError(w, err, "Failed to update todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.todoService.DeleteTodo(r.Context(), id); err != nil {
		s.respondServiceError(w, err, "Failed to delete todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

// respondServiceError maps the domain error taxonomy to HTTP status
// codes. Ownership misses surface as 404 so the API does not reveal
// whether a foreign id exists. Anything outside the taxonomy is an
// internal store failure: logged in full, returned opaque.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		respondWithError(w, http.StatusTooManyRequests, "Too many todos created, try again later")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusNotFound, "Todo not found")
	default:
		log.Printf("Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
