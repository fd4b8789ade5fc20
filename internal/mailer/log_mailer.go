package mailer

import (
	"context"
	"fmt"

	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

// LogMailer stands in for SMTP when no mail credentials are configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendBookingConfirmation(ctx context.Context, booking *models.Booking) error {
	amount := "-"
	if booking.Amount != nil {
		amount = fmt.Sprintf("%.2f", *booking.Amount)
	}
	m.log.LogMail("MOCK_SEND", booking.Email, fmt.Sprintf(
		"Booking confirmed for %s on %s at %s, persons: %d, amount: %s",
		booking.Name, booking.Date, booking.ShowTime, booking.PersonCount, amount))
	return nil
}
