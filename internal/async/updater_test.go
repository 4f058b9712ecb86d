package async

import (
	"context"
	"testing"
	"time"

	"tasteboard/internal/middleware"
	"tasteboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.User{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestUpdaterCommitsAfterDelay(t *testing.T) {
	db := setupTestDB(t)
	u := NewUpdater(db, 50*time.Millisecond, middleware.Logger)

	item := &models.Item{Name: "Soup"}
	require.NoError(t, db.Create(item).Error)

	u.Schedule(Update{
		Entity: "item",
		Model:  &models.Item{},
		ID:     item.ID,
		Column: "description",
		Value:  "Hot soup",
	})

	// Schedule returns before the mutation happens.
	var immediate models.Item
	require.NoError(t, db.First(&immediate, item.ID).Error)
	assert.Equal(t, "", immediate.Description)

	u.Wait()

	var updated models.Item
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "Hot soup", updated.Description)
}

func TestUpdaterScheduleReturnsImmediately(t *testing.T) {
	db := setupTestDB(t)
	u := NewUpdater(db, 500*time.Millisecond, middleware.Logger)

	item := &models.Item{Name: "Stew"}
	require.NoError(t, db.Create(item).Error)

	start := time.Now()
	u.Schedule(Update{Entity: "item", Model: &models.Item{}, ID: item.ID, Column: "description", Value: "slow"})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond)
	u.Wait()
}

func TestUpdaterSkipsDeletedRow(t *testing.T) {
	db := setupTestDB(t)
	u := NewUpdater(db, 50*time.Millisecond, middleware.Logger)

	item := &models.Item{Name: "Ephemeral"}
	require.NoError(t, db.Create(item).Error)

	u.Schedule(Update{Entity: "item", Model: &models.Item{}, ID: item.ID, Column: "description", Value: "never lands"})

	// Delete the row while the update is in flight.
	require.NoError(t, db.Delete(&models.Item{}, item.ID).Error)

	u.Wait()

	// The update was a no-op; the row stays gone.
	var count int64
	require.NoError(t, db.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdaterLastCommitWins(t *testing.T) {
	db := setupTestDB(t)
	u := NewUpdater(db, 20*time.Millisecond, middleware.Logger)

	user := &models.User{Username: "flip", Email: "old@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)

	u.Schedule(Update{Entity: "user", Model: &models.User{}, ID: user.ID, Column: "email", Value: "a@example.com"})
	u.Schedule(Update{Entity: "user", Model: &models.User{}, ID: user.ID, Column: "email", Value: "b@example.com"})
	u.Wait()

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Contains(t, []string{"a@example.com", "b@example.com"}, updated.Email)
	assert.NotEqual(t, "old@example.com", updated.Email)
}

func TestUpdaterWaitDrains(t *testing.T) {
	db := setupTestDB(t)
	u := NewUpdater(db, 10*time.Millisecond, middleware.Logger)

	item := &models.Item{Name: "Drained"}
	require.NoError(t, db.Create(item).Error)

	for i := 0; i < 5; i++ {
		u.Schedule(Update{Entity: "item", Model: &models.Item{}, ID: item.ID, Column: "description", Value: "done"})
	}

	done := make(chan struct{})
	go func() {
		u.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not drain scheduled updates")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var updated models.Item
	require.NoError(t, db.WithContext(ctx).First(&updated, item.ID).Error)
	assert.Equal(t, "done", updated.Description)
}
