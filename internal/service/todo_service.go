package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todolist-backend/internal/auth"
	"todolist-backend/internal/domain"
	"todolist-backend/internal/ratelimit"
	"todolist-backend/internal/repository"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

// CreateTodoRequest holds the data needed to create a new todo. The
// owner, id and timestamps are always server-assigned.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoRequest holds a partial update. Pointers distinguish a
// field being omitted from being set to its zero value.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoResponse is the representation of a todo returned to callers.
type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TodoService is the procedure layer: every method asserts the
// authenticated-user invariant, validates input, enforces ownership
// and delegates to the repository. All four procedures require a
// session in ctx and fail with domain.ErrUnauthenticated otherwise.
type TodoService interface {
	ListTodos(ctx context.Context, order domain.SortOrder) ([]TodoResponse, error)
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)
	UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) error
	DeleteTodo(ctx context.Context, id string) error
}

type todoService struct {
	repo    repository.TodoRepository
	limiter ratelimit.Limiter
}

// NewTodoService creates the procedure layer over the given repository
// and create-rate limiter.
func NewTodoService(repo repository.TodoRepository, limiter ratelimit.Limiter) TodoService {
	return &todoService{repo: repo, limiter: limiter}
}

// callerID narrows the context to a concrete user id or fails the
// call before any business logic runs.
func callerID(ctx context.Context) (string, error) {
	session, ok := auth.FromContext(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return session.UserID, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < 1 || length > maxTitleLen {
		return domain.NewValidationError(fmt.Sprintf("title must be between 1 and %d characters", maxTitleLen))
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return domain.NewValidationError(fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

func toResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}

// ListTodos returns all of the caller's todos. Uncompleted items sort
// before completed ones; within each partition items follow the
// requested creation-time order.
func (s *todoService) ListTodos(ctx context.Context, order domain.SortOrder) ([]TodoResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	todos, err := s.repo.ListByOwner(ctx, userID, order)
	if err != nil {
		log.Printf("Error fetching todos for user %s: %v", userID, err)
		return nil, errors.New("failed to retrieve todo items")
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, toResponse(&todos[i]))
	}
	return responses, nil
}

// CreateTodo validates the input, charges the caller's rate-limit
// window and inserts a new todo owned by the caller. The id and
// timestamps are server-assigned; completed always starts false.
func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	if !s.limiter.Allow(userID) {
		return nil, fmt.Errorf("%w: too many todos created, try again later", domain.ErrRateLimited)
	}

	todo := &domain.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		log.Printf("Error creating todo for user %s: %v", userID, err)
		return nil, errors.New("failed to create todo item")
	}

	response := toResponse(todo)
	return &response, nil
}

// UpdateTodo applies the supplied subset of {title, description,
// completed} to a todo the caller owns. Ownership is re-verified at
// the store on every call; id, owner and creation time never change.
func (s *todoService) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	fields := make(map[string]any)
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return err
		}
		fields["description"] = *req.Description
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if len(fields) == 0 {
		return domain.NewValidationError("no fields to update")
	}

	err = s.repo.UpdateOwned(ctx, userID, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: todo %s", domain.ErrNotFound, id)
		}
		log.Printf("Error updating todo %s for user %s: %v", id, userID, err)
		return errors.New("failed to update todo item")
	}
	return nil
}

// DeleteTodo permanently removes a todo the caller owns. Deleting an
// id that does not exist, or that someone else owns, fails with
// not-found rather than silently succeeding.
func (s *todoService) DeleteTodo(ctx context.Context, id string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	err = s.repo.DeleteOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: todo %s", domain.ErrNotFound, id)
		}
		log.Printf("Error deleting todo %s for user %s: %v", id, userID, err)
		return errors.New("failed to delete todo item")
	}
	return nil
}
