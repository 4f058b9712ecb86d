package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// FavoriteFood is a food a user has marked as a favorite. Like reviews, rows
// are cascade-deleted by application code when the parent user is deleted.
type FavoriteFood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	FoodName  string    `gorm:"size:120;not null" json:"food_name"`
	CreatedAt time.Time `json:"-"`
}

// Serialize returns the public wire representation of the favorite food.
func (f *FavoriteFood) Serialize() fiber.Map {
	return fiber.Map{
		"id":        f.ID,
		"food_name": f.FoodName,
	}
}
