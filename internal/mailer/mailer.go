package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/kotsioskl2/vehicle-market/internal/config"
)

// Mailer sends moderation notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password),
		from:   cfg.From,
	}
}

// SendListingPosted notifies toEmail that a new listing was posted and is
// awaiting review.
func (m *Mailer) SendListingPosted(toEmail, listingName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New listing posted")
	msg.SetBody("text/plain", fmt.Sprintf("A new listing %q was posted and is awaiting review.", listingName))

	return m.dialer.DialAndSend(msg)
}
