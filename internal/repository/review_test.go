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

func TestReviewRepositoryListByItem(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	curry := &models.Item{Name: "Curry"}
	salad := &models.Item{Name: "Salad"}
	require.NoError(t, itemRepo.Create(ctx, curry))
	require.NoError(t, itemRepo.Create(ctx, salad))

	for i := 0; i < 5; i++ {
		require.NoError(t, reviewRepo.Create(ctx, &models.Review{
			ItemID: curry.ID,
			Review: fmt.Sprintf("curry review %d", i),
			Rating: i%5 + 1,
		}))
	}
	require.NoError(t, reviewRepo.Create(ctx, &models.Review{ItemID: salad.ID, Review: "crisp", Rating: 4}))

	reviews, total, pages, err := reviewRepo.ListByItem(ctx, curry.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, 3, pages)
	assert.Len(t, reviews, 2)

	// Only the parent item's reviews are counted.
	_, total, _, err = reviewRepo.ListByItem(ctx, salad.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestReviewRepositoryGetForItemScoping(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	tacos := &models.Item{Name: "Tacos"}
	burger := &models.Item{Name: "Burger"}
	require.NoError(t, itemRepo.Create(ctx, tacos))
	require.NoError(t, itemRepo.Create(ctx, burger))

	review := &models.Review{ItemID: tacos.ID, Review: "spicy", Rating: 5}
	require.NoError(t, reviewRepo.Create(ctx, review))

	got, err := reviewRepo.GetForItem(ctx, tacos.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "spicy", got.Review)

	_, err = reviewRepo.GetForItem(ctx, burger.ID, review.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
