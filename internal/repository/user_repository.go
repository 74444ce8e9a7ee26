package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todolist-backend/internal/domain"
)

// UserRepository provisions user rows. Accounts are created on first
// sign-in and never touched again by this service.
type UserRepository interface {
	Ensure(ctx context.Context, user *domain.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Ensure inserts the user if the id is unseen and leaves an existing
// row alone.
func (r *gormUserRepository) Ensure(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
}
