package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// User represents an account in the Tasteboard application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:200;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Serialize returns the public wire representation of the user.
// The password hash never leaves the process.
func (u *User) Serialize() fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}
