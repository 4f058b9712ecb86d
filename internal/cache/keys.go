package cache

import (
	"fmt"
	"time"
)

const (
	itemKeyPrefix = "item:%d"
	userKeyPrefix = "user:%d"
)

const (
	// ItemTTL bounds staleness between a deferred description update's
	// commit and its cache invalidation.
	ItemTTL = 5 * time.Minute
	UserTTL = 5 * time.Minute
)

// ItemKey returns the cache key for a single item.
func ItemKey(itemID uint) string {
	return fmt.Sprintf(itemKeyPrefix, itemID)
}

// UserKey returns the cache key for a single user.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}
