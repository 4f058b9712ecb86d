// Package seed provides helpers to create development and demo data.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"

	"tasteboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the amount of generated data.
type Options struct {
	Items          int
	ReviewsPerItem int
	Users          int
	FoodsPerUser   int
	Seed           int64
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		Items:          20,
		ReviewsPerItem: 3,
		Users:          10,
		FoodsPerUser:   2,
	}
}

// Run populates the database with fake items, reviews, users, and favorite
// foods.
func Run(db *gorm.DB, opts Options) error {
	if opts.Seed != 0 {
		gofakeit.Seed(opts.Seed)
	}

	for i := 0; i < opts.Items; i++ {
		item := &models.Item{
			Name:        gofakeit.Dinner(),
			Description: gofakeit.Sentence(8),
		}
		if err := db.Create(item).Error; err != nil {
			return fmt.Errorf("seed item: %w", err)
		}

		for j := 0; j < opts.ReviewsPerItem; j++ {
			review := &models.Review{
				ItemID: item.ID,
				Review: gofakeit.Sentence(10),
				Rating: gofakeit.Number(1, 5),
			}
			if err := db.Create(review).Error; err != nil {
				return fmt.Errorf("seed review: %w", err)
			}
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for j := 0; j < opts.FoodsPerUser; j++ {
			food := &models.FavoriteFood{
				UserID:   user.ID,
				FoodName: gofakeit.Fruit(),
			}
			if err := db.Create(food).Error; err != nil {
				return fmt.Errorf("seed favorite food: %w", err)
			}
		}
	}

	log.Printf("Seeded %d items, %d users", opts.Items, opts.Users)
	return nil
}
