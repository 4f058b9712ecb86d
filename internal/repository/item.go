package repository

import (
	"context"

	"tasteboard/internal/cache"
	"tasteboard/internal/models"

	"gorm.io/gorm"
)

// ItemRepository defines the interface for item data operations.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context, page, perPage int, nameFilter string) ([]*models.Item, int64, int, error)
	Delete(ctx context.Context, id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := cache.Aside(ctx, cache.ItemKey(id), &item, cache.ItemTTL, func() error {
		return r.db.WithContext(ctx).First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, page, perPage int, nameFilter string) ([]*models.Item, int64, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})
	if nameFilter != "" {
		// LOWER/LIKE instead of ILIKE keeps the filter portable across
		// Postgres and the sqlite test databases.
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+nameFilter+"%")
	}

	var items []*models.Item
	total, pages, err := Paginate(q, page, perPage, &items)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, pages, nil
}

// Delete removes the item and all of its reviews in one transaction. The
// cascade lives here, not in the schema.
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ItemKey(id))
	return nil
}
