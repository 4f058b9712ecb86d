package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tasteboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestItemRepositoryListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, repo.Create(ctx, &models.Item{Name: fmt.Sprintf("dish-%d", i)}))
	}

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantLen   int
		wantPages int
	}{
		{name: "first page", page: 1, perPage: 3, wantLen: 3, wantPages: 3},
		{name: "last partial page", page: 3, perPage: 3, wantLen: 1, wantPages: 3},
		{name: "out of range page is empty, not an error", page: 9, perPage: 3, wantLen: 0, wantPages: 3},
		{name: "single page", page: 1, perPage: 100, wantLen: 7, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, pages, err := repo.List(ctx, tt.page, tt.perPage, "")
			require.NoError(t, err)
			assert.Equal(t, int64(7), total)
			assert.Equal(t, tt.wantPages, pages)
			assert.Len(t, items, tt.wantLen)
			assert.LessOrEqual(t, len(items), tt.perPage)
		})
	}
}

func TestItemRepositoryListOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Item{Name: "Zucchini"}))
	require.NoError(t, repo.Create(ctx, &models.Item{Name: "Apple"}))

	items, _, _, err := repo.List(ctx, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Zucchini", items[0].Name)
	assert.Equal(t, "Apple", items[1].Name)
}

func TestItemRepositoryListNameFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Item{Name: "Pizza"}))
	require.NoError(t, repo.Create(ctx, &models.Item{Name: "Pasta"}))

	items, total, pages, err := repo.List(ctx, 1, 10, "piz")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, pages)
	require.Len(t, items, 1)
	assert.Equal(t, "Pizza", items[0].Name)
}

func TestItemRepositoryDeleteCascadesReviews(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Soup"}
	require.NoError(t, itemRepo.Create(ctx, item))
	require.NoError(t, reviewRepo.Create(ctx, &models.Review{ItemID: item.ID, Review: "great", Rating: 5}))
	require.NoError(t, reviewRepo.Create(ctx, &models.Review{ItemID: item.ID, Review: "fine", Rating: 3}))

	require.NoError(t, itemRepo.Delete(ctx, item.ID))

	_, err := itemRepo.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("item_id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestItemRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	err := repo.Delete(context.Background(), 42)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
