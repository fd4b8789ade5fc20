package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
)

var validate = validator.New()

// Booking is an immutable record written once a payment completes.
// Date is opaque text and sorts lexicographically.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID          int64     `json:"id" bun:"id,pk,autoincrement"`
	Name        string    `json:"name" bun:"name,notnull" validate:"required"`
	Email       string    `json:"email" bun:"email,notnull" validate:"required"`
	Mobile      string    `json:"mobile" bun:"mobile,notnull" validate:"required"`
	ShowTime    string    `json:"showTime" bun:"show_time,notnull" validate:"required"`
	Date        string    `json:"date" bun:"date,type:varchar(64),notnull" validate:"required"`
	PersonCount int       `json:"personCount" bun:"person_count,notnull" validate:"required"`
	PaymentID   string    `json:"paymentId" bun:"payment_id,notnull" validate:"required"`
	OrderID     string    `json:"orderId" bun:"order_id,notnull" validate:"required"`
	Amount      *float64  `json:"amount" bun:"amount,notnull" validate:"required"`
	CreatedAt   time.Time `json:"createdAt" bun:"created_at,notnull"`
}

// Validate reports the first missing required field.
func (b *Booking) Validate() error {
	return validate.Struct(b)
}

// SaveBookingRequest is the payload of POST /save-booking.
type SaveBookingRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Mobile      string   `json:"mobile"`
	ShowTime    string   `json:"showTime"`
	Date        string   `json:"date"`
	PersonCount *int     `json:"personCount"`
	PaymentID   string   `json:"paymentId"`
	OrderID     string   `json:"orderId"`
	Amount      *float64 `json:"amount"`
}

// UnmarshalJSON accepts personCount as a JSON number or a numeric string.
// An empty string or null leaves it unset.
func (r *SaveBookingRequest) UnmarshalJSON(data []byte) error {
	type plain SaveBookingRequest
	aux := struct {
		*plain
		PersonCount json.RawMessage `json:"personCount"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	count, err := parseCount(aux.PersonCount)
	if err != nil {
		return err
	}
	r.PersonCount = count
	return nil
}

func parseCount(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("personCount: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = string(raw)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return nil, fmt.Errorf("personCount: %s is not a whole number", raw)
	}
	n := int(f)
	return &n, nil
}

func (r *SaveBookingRequest) ToBooking(now time.Time) *Booking {
	b := &Booking{
		Name:      r.Name,
		Email:     r.Email,
		Mobile:    r.Mobile,
		ShowTime:  r.ShowTime,
		Date:      r.Date,
		PaymentID: r.PaymentID,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		CreatedAt: now,
	}
	if r.PersonCount != nil {
		b.PersonCount = *r.PersonCount
	}
	return b
}

// SaveBookingResult carries a persisted booking. NotificationErr is set when
// the confirmation could not be delivered; the booking stays persisted.
type SaveBookingResult struct {
	Booking         *Booking
	Notified        bool
	NotificationErr error
}
