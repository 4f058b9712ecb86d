// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Item represents a rateable item in the Tasteboard catalog.
// Rows are hard-deleted; there is no soft-delete column anywhere in this schema.
type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:80;not null" json:"name"`
	Description string    `gorm:"size:200" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Serialize returns the public wire representation of the item.
func (i *Item) Serialize() fiber.Map {
	return fiber.Map{
		"id":          i.ID,
		"name":        i.Name,
		"description": i.Description,
	}
}
