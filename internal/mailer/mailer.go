// Package mailer delivers transactional mail through a configurable provider.
package mailer

import (
	"context"
	"errors"
	"fmt"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends mail best-effort; callers must not assume delivery.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures a mail provider.
type Config struct {
	Provider     string // "sendgrid" or "smtp"
	From         string
	SendGridKey  string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

var ErrUnknownProvider = errors.New("unknown mail provider")

// New returns the Mailer for cfg.Provider.
func New(cfg Config) (Mailer, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridKey, cfg.From)
	case "smtp":
		return NewSMTPMailer(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
