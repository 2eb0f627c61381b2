package mailer

import (
	"errors"
	"testing"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "pigeon"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("New() error = %v, want ErrUnknownProvider", err)
	}
}

func TestNewSendGrid(t *testing.T) {
	m, err := New(Config{Provider: "sendgrid", SendGridKey: "SG.key", From: "noreply@example.com"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if _, ok := m.(*SendGridMailer); !ok {
		t.Errorf("New() returned %T, want *SendGridMailer", m)
	}
}

func TestNewSendGridMissingKey(t *testing.T) {
	_, err := New(Config{Provider: "sendgrid", From: "noreply@example.com"})
	if err == nil {
		t.Error("New() expected error for missing sendgrid key")
	}
}

func TestNewSMTP(t *testing.T) {
	m, err := New(Config{
		Provider: "smtp",
		From:     "noreply@example.com",
		SMTPHost: "127.0.0.1",
		SMTPPort: "25",
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	sm, ok := m.(*SMTPMailer)
	if !ok {
		t.Fatalf("New() returned %T, want *SMTPMailer", m)
	}
	if sm.addr != "127.0.0.1:25" {
		t.Errorf("SMTPMailer addr = %q, want %q", sm.addr, "127.0.0.1:25")
	}
	if sm.auth != nil {
		t.Error("SMTPMailer auth should be nil without a username")
	}
}

func TestNewSMTPMissingHost(t *testing.T) {
	_, err := New(Config{Provider: "smtp", From: "noreply@example.com", SMTPPort: "25"})
	if err == nil {
		t.Error("New() expected error for missing smtp host")
	}
}
