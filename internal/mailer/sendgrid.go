package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridMailer creates a SendGridMailer.
func NewSendGridMailer(key, from string) (*SendGridMailer, error) {
	if key == "" || from == "" {
		return nil, errors.New("sendgrid: api key and from address are required")
	}
	return &SendGridMailer{client: sendgrid.NewSendClient(key), from: from}, nil
}

// Send delivers msg as a single plain-text email.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	email := sgmail.NewSingleEmail(
		sgmail.NewEmail("", m.from),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Body,
		msg.Body,
	)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
