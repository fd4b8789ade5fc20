package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/mail"
	"net/smtp"

	"ticket-booking/internal/config"
	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

const confirmationSubject = "🎟 Your Booking is Confirmed"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto; border: 2px dashed #FF6600; border-radius: 10px; padding: 20px; background-color: #fff9f2;">
	<h2 style="color: #FF6600; text-align: center;">🎟 Booking Confirmed</h2>
	<p style="font-size: 16px; color: #555;">Hi {{.Name}}, your booking is confirmed.</p>
	<table style="font-size: 15px; color: #333;">
		<tr><td><b>Date</b></td><td>{{.Date}}</td></tr>
		<tr><td><b>Show Time</b></td><td>{{.ShowTime}}</td></tr>
		<tr><td><b>Persons</b></td><td>{{.PersonCount}}</td></tr>
		<tr><td><b>Amount Paid</b></td><td>₹{{.Amount}}</td></tr>
	</table>
	<p style="font-size: 14px; color: #888; margin-top: 15px;">Please show this email at the entrance.</p>
</div>`))

type confirmationData struct {
	Name        string
	Date        string
	ShowTime    string
	PersonCount int
	Amount      string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers booking confirmations through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg  config.MailConfig
	log  *logger.Logger
	send sendFunc
}

func NewSMTPMailer(cfg config.MailConfig, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:  cfg,
		log:  log,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := BuildConfirmation(m.from(), booking)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	m.log.LogMail("SEND", booking.Email, fmt.Sprintf("Sending confirmation for order %s via %s", booking.OrderID, addr))
	if err := m.send(addr, auth, m.cfg.Username, []string{booking.Email}, msg); err != nil {
		m.log.Error("MAIL", fmt.Sprintf("Failed to send confirmation to %s: %v", booking.Email, err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.LogMail("SENT", booking.Email, "Confirmation delivered to relay")
	return nil
}

func (m *SMTPMailer) from() mail.Address {
	return mail.Address{Name: m.cfg.FromName, Address: m.cfg.Username}
}

// BuildConfirmation renders the full RFC 5322 message for a booking.
// Non-ASCII header text is RFC 2047 encoded.
func BuildConfirmation(from mail.Address, booking *models.Booking) ([]byte, error) {
	data := confirmationData{
		Name:        booking.Name,
		Date:        booking.Date,
		ShowTime:    booking.ShowTime,
		PersonCount: booking.PersonCount,
	}
	if booking.Amount != nil {
		data.Amount = fmt.Sprintf("%.2f", *booking.Amount)
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render confirmation: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", booking.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", confirmationSubject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
