package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAsideMissThenHit(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Name = "Soup"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, ItemKey(1), &first, time.Minute, fetch(&first)))
	assert.Equal(t, "Soup", first.Name)
	assert.Equal(t, 1, fetches)

	// Second read is served from the cache.
	var second cachedThing
	require.NoError(t, Aside(ctx, ItemKey(1), &second, time.Minute, fetch(&second)))
	assert.Equal(t, "Soup", second.Name)
	assert.Equal(t, 1, fetches)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(2), cachedThing{ID: 2, Name: "stale"}, time.Minute))
	Invalidate(ctx, UserKey(2))

	var got cachedThing
	found, err := GetJSON(ctx, UserKey(2), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientPassesThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var got cachedThing
	err := Aside(ctx, ItemKey(9), &got, time.Minute, func() error {
		got.Name = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)
}
