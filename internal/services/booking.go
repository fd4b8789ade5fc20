package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
	"ticket-booking/internal/storage"
	"ticket-booking/internal/utils"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamFailure     = errors.New("payment gateway failure")
	ErrPersistenceFailure  = errors.New("booking store failure")
	ErrNotificationFailure = errors.New("confirmation email failure")

	ErrAmountInvalid      = fmt.Errorf("%w: amount must be a number", ErrInvalidInput)
	ErrPersonCountMissing = fmt.Errorf("%w: person count is missing", ErrInvalidInput)

	ErrGatewayInitFailed = errors.New("failed to initialize payment gateway client")
	ErrGatewayAPIError   = errors.New("payment gateway API error")
)

// OrderGateway creates a payable order. Amounts are in minor units.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *models.GatewayOrderRequest) (*models.GatewayOrder, error)
}

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking) error
}

type EventPublisher interface {
	PublishBookingEvent(event *models.BookingEvent) error
}

// BookingCache caches the full listing. Set must not store a listing read
// under a generation that an Invalidate has since replaced.
type BookingCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context) ([]*models.Booking, bool, error)
	Set(ctx context.Context, generation int64, bookings []*models.Booking) (bool, error)
	Invalidate(ctx context.Context) error
}

type BookingServiceConfig struct {
	Currency      string
	NotifyEnabled bool
}

type BookingService struct {
	store     storage.Store
	gateway   OrderGateway
	notifier  Notifier
	publisher EventPublisher
	cache     BookingCache
	log       *logger.Logger

	currency      string
	notifyEnabled bool
	receipts      *utils.ReceiptGenerator
	now           func() time.Time
}

// NewBookingService wires the workflow. publisher and cache may be nil.
func NewBookingService(
	store storage.Store,
	gateway OrderGateway,
	notifier Notifier,
	publisher EventPublisher,
	cache BookingCache,
	log *logger.Logger,
	cfg BookingServiceConfig,
) *BookingService {
	currency := cfg.Currency
	if currency == "" {
		currency = "INR"
	}
	return &BookingService{
		store:         store,
		gateway:       gateway,
		notifier:      notifier,
		publisher:     publisher,
		cache:         cache,
		log:           log,
		currency:      currency,
		notifyEnabled: cfg.NotifyEnabled && notifier != nil,
		receipts:      &utils.ReceiptGenerator{},
		now:           time.Now,
	}
}

func (s *BookingService) NotifyEnabled() bool { return s.notifyEnabled }

// CreateOrder asks the gateway for an order worth amount×100 minor units and
// returns the gateway's order ID with the amount as requested.
func (s *BookingService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if req == nil || req.Amount == nil || math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		s.log.Warn("BOOKING", "Order creation rejected: amount missing or not a number")
		return nil, ErrAmountInvalid
	}
	amount := *req.Amount

	gatewayReq := &models.GatewayOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: s.currency,
		Receipt:  s.receipts.Next(s.now()),
	}

	s.log.LogPayment("ORDER_INIT", gatewayReq.Receipt, fmt.Sprintf("Creating order for %.2f %s", amount, s.currency))

	order, err := s.gateway.CreateOrder(ctx, gatewayReq)
	if err != nil {
		s.log.Error("PAYMENT", fmt.Sprintf("Order creation failed for receipt %s: %v", gatewayReq.Receipt, err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	s.log.LogPayment("ORDER_CREATED", order.ID, fmt.Sprintf("Gateway order created for receipt %s", gatewayReq.Receipt))

	s.publish(&models.BookingEvent{
		Type:    models.EventOrderCreated,
		OrderID: order.ID,
		Order:   order,
	})

	return &models.CreateOrderResponse{
		ID:     order.ID,
		Amount: amount,
	}, nil
}

// SaveBooking persists the booking once and then, when enabled, sends the
// confirmation. A failed confirmation is reported on the result and never
// undoes the write.
func (s *BookingService) SaveBooking(ctx context.Context, req *models.SaveBookingRequest) (*models.SaveBookingResult, error) {
	if req == nil || req.PersonCount == nil || *req.PersonCount == 0 {
		s.log.Warn("BOOKING", "Booking rejected: person count is missing")
		return nil, ErrPersonCountMissing
	}

	booking := req.ToBooking(s.now().UTC())

	s.log.LogBooking("SAVE", booking.OrderID, fmt.Sprintf("Saving booking for %s, persons: %d", booking.Email, booking.PersonCount))

	if err := s.store.SaveBooking(ctx, booking); err != nil {
		s.log.Error("BOOKING", fmt.Sprintf("Failed to save booking for order %s: %v", booking.OrderID, err))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	s.log.LogBooking("SAVED", booking.OrderID, fmt.Sprintf("Booking %d persisted", booking.ID))

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("CACHE", fmt.Sprintf("Failed to invalidate bookings cache: %v", err))
		}
	}

	s.publish(&models.BookingEvent{
		Type:    models.EventBookingCreated,
		OrderID: booking.OrderID,
		Booking: booking,
	})

	result := &models.SaveBookingResult{Booking: booking}
	if !s.notifyEnabled {
		return result, nil
	}

	if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		s.log.Error("MAIL", fmt.Sprintf("Booking %d saved but confirmation failed: %v", booking.ID, err))
		result.NotificationErr = fmt.Errorf("%w: %v", ErrNotificationFailure, err)
		return result, nil
	}

	result.Notified = true
	return result, nil
}

// ListBookings returns every booking, newest date text first.
func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	cache := s.cache
	var generation int64
	if cache != nil {
		gen, err := cache.Generation(ctx)
		if err != nil {
			s.log.Warn("CACHE", fmt.Sprintf("Bookings cache unavailable, reading store: %v", err))
			cache = nil
		}
		generation = gen
	}

	if cache != nil {
		bookings, ok, err := cache.Get(ctx)
		if err != nil {
			s.log.Warn("CACHE", fmt.Sprintf("Bookings cache unavailable, reading store: %v", err))
		} else if ok {
			s.log.Debug("CACHE", fmt.Sprintf("Serving %d bookings from cache", len(bookings)))
			return bookings, nil
		}
	}

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		s.log.Error("BOOKING", fmt.Sprintf("Failed to list bookings: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}

	if cache != nil {
		stored, err := cache.Set(ctx, generation, bookings)
		switch {
		case err != nil:
			s.log.Warn("CACHE", fmt.Sprintf("Failed to fill bookings cache: %v", err))
		case !stored:
			s.log.Debug("CACHE", "Skipped cache fill, a booking was saved during the read")
		}
	}

	return bookings, nil
}

func (s *BookingService) publish(event *models.BookingEvent) {
	if s.publisher == nil {
		return
	}

	event.ID = utils.GenerateEventID()
	event.Timestamp = s.now().UTC()

	if err := s.publisher.PublishBookingEvent(event); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s event for order %s: %v", event.Type, event.OrderID, err))
		s.log.LogProcess("FALLBACK", fmt.Sprintf("Order %s processed successfully despite Kafka publish failure", event.OrderID))
	}
}
