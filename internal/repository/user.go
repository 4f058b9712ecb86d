package repository

import (
	"context"

	"tasteboard/internal/cache"
	"tasteboard/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, page, perPage int, usernameFilter string) ([]*models.User, int64, int, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page, perPage int, usernameFilter string) ([]*models.User, int64, int, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if usernameFilter != "" {
		q = q.Where("LOWER(username) LIKE LOWER(?)", "%"+usernameFilter+"%")
	}

	var users []*models.User
	total, pages, err := Paginate(q, page, perPage, &users)
	if err != nil {
		return nil, 0, 0, err
	}
	return users, total, pages, nil
}

// Delete removes the user and all of their favorite foods in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.UserKey(id))
	return nil
}
