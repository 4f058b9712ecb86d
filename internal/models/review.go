package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Review is a rating attached to an Item. Reviews are removed by application
// code when the parent item is deleted; the schema carries no ON DELETE clause.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	Review    string    `gorm:"size:200;not null" json:"review"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"-"`
}

// Serialize returns the public wire representation of the review.
// The parent item id travels in the enclosing payload, not here.
func (r *Review) Serialize() fiber.Map {
	return fiber.Map{
		"id":     r.ID,
		"review": r.Review,
		"rating": r.Rating,
	}
}
