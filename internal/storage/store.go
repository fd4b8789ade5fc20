package storage

import (
	"context"
	"errors"

	"ticket-booking/internal/models"
)

var ErrInvalidRecord = errors.New("booking record invalid")

// Store persists booking records. Records are append-only: there is no
// update or delete.
type Store interface {
	SaveBooking(ctx context.Context, booking *models.Booking) error
	// ListBookings returns every record ordered by Date descending,
	// comparing the stored text byte-wise. Ties keep insertion order.
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	HealthCheck(ctx context.Context) error
	Close() error
}
