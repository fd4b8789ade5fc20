package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/models"
)

func TestBookingCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	c := NewBookingCache(client, time.Minute)
	defer c.Close()
	ctx := context.Background()

	t.Run("MissOnEmpty", func(t *testing.T) {
		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		amount := 250.0
		want := []*models.Booking{
			{ID: 2, Name: "B", Date: "2024-02-01", PersonCount: 1, Amount: &amount},
			{ID: 1, Name: "A", Date: "2024-01-01", PersonCount: 3, Amount: &amount},
		}
		stored, err := c.Set(ctx, 0, want)
		require.NoError(t, err)
		require.True(t, stored)

		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, got, 2)
		assert.Equal(t, "2024-02-01", got[0].Date)
		assert.Equal(t, 3, got[1].PersonCount)
		assert.Equal(t, 250.0, *got[1].Amount)
	})

	t.Run("EmptyListingIsAHit", func(t *testing.T) {
		_, err := c.Set(ctx, 0, []*models.Booking{})
		require.NoError(t, err)
		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		_, err = c.Set(ctx, gen, []*models.Booking{{ID: 1}})
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		next, err := c.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, gen+1, next)
	})

	t.Run("StaleGenerationIsNotStored", func(t *testing.T) {
		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx))

		stored, err := c.Set(ctx, gen, []*models.Booking{{ID: 1}})
		require.NoError(t, err)
		assert.False(t, stored)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expires", func(t *testing.T) {
		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		stored, err := c.Set(ctx, gen, []*models.Booking{{ID: 1}})
		require.NoError(t, err)
		require.True(t, stored)
		s.FastForward(2 * time.Minute)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBookingCacheUnavailable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	c := NewBookingCache(client, time.Minute)
	defer c.Close()
	s.Close()

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
