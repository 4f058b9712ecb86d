package repository

import (
	"context"

	"tasteboard/internal/models"

	"gorm.io/gorm"
)

// FavoriteFoodRepository defines the interface for favorite food data operations.
type FavoriteFoodRepository interface {
	Create(ctx context.Context, food *models.FavoriteFood) error
	ListByUser(ctx context.Context, userID uint, page, perPage int) ([]*models.FavoriteFood, int64, int, error)
	GetForUser(ctx context.Context, userID, foodID uint) (*models.FavoriteFood, error)
	Delete(ctx context.Context, id uint) error
}

type favoriteFoodRepository struct {
	db *gorm.DB
}

// NewFavoriteFoodRepository creates a new favorite food repository.
func NewFavoriteFoodRepository(db *gorm.DB) FavoriteFoodRepository {
	return &favoriteFoodRepository{db: db}
}

func (r *favoriteFoodRepository) Create(ctx context.Context, food *models.FavoriteFood) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *favoriteFoodRepository) ListByUser(ctx context.Context, userID uint, page, perPage int) ([]*models.FavoriteFood, int64, int, error) {
	q := r.db.WithContext(ctx).Model(&models.FavoriteFood{}).Where("user_id = ?", userID)

	var foods []*models.FavoriteFood
	total, pages, err := Paginate(q, page, perPage, &foods)
	if err != nil {
		return nil, 0, 0, err
	}
	return foods, total, pages, nil
}

// GetForUser loads a favorite food only if it belongs to the given user.
func (r *favoriteFoodRepository) GetForUser(ctx context.Context, userID, foodID uint) (*models.FavoriteFood, error) {
	var food models.FavoriteFood
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *favoriteFoodRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FavoriteFood{}, id).Error
}
