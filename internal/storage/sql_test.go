package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/config"
	"ticket-booking/internal/logger"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLStore(config.DatabaseConfig{
		Driver:       "sqlite3",
		URL:          "file:" + t.Name() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger.New(&bytes.Buffer{}, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStoreSaveAndList(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.HealthCheck(ctx))

	for _, b := range []struct{ order, date string }{
		{"order_a", "2024-01-05"},
		{"order_b", "2024-03-01"},
		{"order_c", "2024-01-05"},
	} {
		booking := newBooking(b.order, b.date)
		require.NoError(t, store.SaveBooking(ctx, booking))
		assert.NotZero(t, booking.ID)
	}

	got, err := store.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "order_b", got[0].OrderID)
	assert.Equal(t, "order_a", got[1].OrderID)
	assert.Equal(t, "order_c", got[2].OrderID)
	require.NotNil(t, got[0].Amount)
	assert.Equal(t, 500.0, *got[0].Amount)
	assert.Equal(t, 2, got[0].PersonCount)
}

func TestSQLStoreRejectsInvalidRecord(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	booking := newBooking("order_a", "2024-01-05")
	booking.Email = ""
	assert.ErrorIs(t, store.SaveBooking(ctx, booking), ErrInvalidRecord)

	got, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewSQLStoreUnknownDriver(t *testing.T) {
	_, err := NewSQLStore(config.DatabaseConfig{Driver: "mongo"}, logger.New(&bytes.Buffer{}, false))
	assert.ErrorContains(t, err, "unsupported store driver")
}
