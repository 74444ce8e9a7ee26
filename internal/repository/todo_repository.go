package repository

import (
	"context"

	"gorm.io/gorm"

	"todolist-backend/internal/domain"
)

// TodoRepository defines owner-scoped todo data operations. Every read
// and write is filtered by the owning user id; a row another user owns
// behaves exactly like a row that does not exist.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	ListByOwner(ctx context.Context, userID string, order domain.SortOrder) ([]domain.Todo, error)
	FindOwned(ctx context.Context, userID, id string) (*domain.Todo, error)
	UpdateOwned(ctx context.Context, userID, id string, fields map[string]any) error
	DeleteOwned(ctx context.Context, userID, id string) error
}

type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// ListByOwner returns the user's todos with uncompleted items first,
// each partition sorted by creation time in the requested direction.
func (r *gormTodoRepository) ListByOwner(ctx context.Context, userID string, order domain.SortOrder) ([]domain.Todo, error) {
	direction := "created_at DESC"
	if order == domain.OrderAsc {
		direction = "created_at ASC"
	}

	var todos []domain.Todo
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed ASC").
		Order(direction).
		Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

func (r *gormTodoRepository) FindOwned(ctx context.Context, userID, id string) (*domain.Todo, error) {
	var todo domain.Todo
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo)
	if result.Error != nil {
		return nil, result.Error
	}
	return &todo, nil
}

// UpdateOwned applies a column-targeted partial update. Zero rows
// affected means the id does not exist or belongs to someone else;
// both surface as gorm.ErrRecordNotFound.
func (r *gormTodoRepository) UpdateOwned(ctx context.Context, userID, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Todo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormTodoRepository) DeleteOwned(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
