package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates an SMTPMailer. Username and password are optional;
// when omitted the relay is used unauthenticated.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.From == "" {
		return nil, errors.New("smtp: host, port and from address are required")
	}

	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.From,
	}, nil
}

// Send delivers msg over SMTP. net/smtp has no context support, so ctx is
// accepted for interface symmetry only.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	body := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s",
		msg.To, m.from, msg.Subject, msg.Body)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(body))
}
