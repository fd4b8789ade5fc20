package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ticket-booking/internal/models"
)

type InMemoryStore struct {
	bookings []*models.Booking
	nextID   int64
	mutex    sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := *booking
	stored.ID = s.nextID
	s.nextID++
	s.bookings = append(s.bookings, &stored)

	booking.ID = stored.ID
	return nil
}

func (s *InMemoryStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.mutex.RLock()
	bookings := make([]*models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		copied := *b
		bookings = append(bookings, &copied)
	}
	s.mutex.RUnlock()

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Date > bookings[j].Date
	})
	return bookings, nil
}

// Count is used by tests to assert how many records were written.
func (s *InMemoryStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.bookings)
}

func (s *InMemoryStore) HealthCheck(ctx context.Context) error { return nil }

func (s *InMemoryStore) Close() error { return nil }
