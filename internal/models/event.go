package models

import "time"

const (
	EventOrderCreated   = "order.created"
	EventBookingCreated = "booking.created"
)

// BookingEvent is published to Kafka after an order or booking is created.
type BookingEvent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	OrderID   string        `json:"order_id"`
	Booking   *Booking      `json:"booking,omitempty"`
	Order     *GatewayOrder `json:"order,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
