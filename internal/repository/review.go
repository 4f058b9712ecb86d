package repository

import (
	"context"

	"tasteboard/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByItem(ctx context.Context, itemID uint, page, perPage int) ([]*models.Review, int64, int, error)
	GetForItem(ctx context.Context, itemID, reviewID uint) (*models.Review, error)
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListByItem(ctx context.Context, itemID uint, page, perPage int) ([]*models.Review, int64, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("item_id = ?", itemID)

	var reviews []*models.Review
	total, pages, err := Paginate(q, page, perPage, &reviews)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, total, pages, nil
}

// GetForItem loads a review only if it belongs to the given item.
func (r *reviewRepository) GetForItem(ctx context.Context, itemID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND item_id = ?", reviewID, itemID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}
