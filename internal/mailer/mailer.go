package mailer

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/emplatform/employee-management-api/internal/config"
)

// Sender delivers a plain-text email. Delivery is best effort: callers
// treat a failure as non-fatal.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Warn().Err(err).Str("to", to).Str("subject", subject).
			Msg("failed to send email")
		return err
	}
	return nil
}

// Noop discards all mail. Used in tests.
type Noop struct{}

func (Noop) Send(to, subject, body string) error {
	return nil
}
