package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ticket-booking/internal/models"
)

const (
	bookingsKey   = "bookings:by_date_desc"
	generationKey = "bookings:generation"
)

// BookingCache holds the full booking listing in Redis. Every write bumps a
// generation counter and drops the listing; a fill is only stored when the
// generation it was read under is still current.
type BookingCache struct {
	Client *redis.Client
	ttl    time.Duration
}

func NewBookingCache(client *redis.Client, ttl time.Duration) *BookingCache {
	return &BookingCache{Client: client, ttl: ttl}
}

// Generation returns the current invalidation counter. Callers read it
// before loading the listing from the store.
func (c *BookingCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Get returns the cached listing; ok is false on a miss.
func (c *BookingCache) Get(ctx context.Context) ([]*models.Booking, bool, error) {
	val, err := c.Client.Get(ctx, bookingsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read bookings cache: %w", err)
	}

	var bookings []*models.Booking
	if err := json.Unmarshal(val, &bookings); err != nil {
		return nil, false, fmt.Errorf("failed to decode bookings cache: %w", err)
	}
	return bookings, true, nil
}

// Set stores the listing if generation is still current. stored is false
// when a write invalidated the cache after the listing was read.
func (c *BookingCache) Set(ctx context.Context, generation int64, bookings []*models.Booking) (bool, error) {
	data, err := json.Marshal(bookings)
	if err != nil {
		return false, fmt.Errorf("failed to encode bookings cache: %w", err)
	}

	stored := false
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, bookingsKey, data, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, generationKey)

	if err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to write bookings cache: %w", err)
	}
	return stored, nil
}

func (c *BookingCache) Invalidate(ctx context.Context) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, bookingsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate bookings cache: %w", err)
	}
	return nil
}

func (c *BookingCache) Close() error {
	return c.Client.Close()
}
