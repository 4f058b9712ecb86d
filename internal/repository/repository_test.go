package repository

import (
	"testing"

	"tasteboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Item{},
		&models.Review{},
		&models.User{},
		&models.FavoriteFood{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
