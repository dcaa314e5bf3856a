package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aicuts/faceshape-api/internal/config"
	"github.com/aicuts/faceshape-api/internal/domain"
)

// Mailer relays a contact submission by email.
type Mailer interface {
	Send(ctx context.Context, sub domain.ContactSubmission) error
}

// Type defines supported mailer backends
type Type string

const (
	// TypeSMTP relays through an SMTP server (default)
	TypeSMTP Type = "smtp"
	// TypeNoop discards messages (dev/test)
	TypeNoop Type = "noop"
)

// New creates a Mailer instance based on configuration.
func New(cfg *config.Config) (Mailer, error) {
	switch Type(cfg.MailerType) {
	case TypeSMTP, "":
		return NewSMTP(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Address:  cfg.MailAddress,
			Password: cfg.MailPassword,
		})

	case TypeNoop:
		return Noop{}, nil

	default:
		return nil, fmt.Errorf("unknown mailer type: %s (supported: %s, %s)",
			cfg.MailerType, TypeSMTP, TypeNoop)
	}
}

// Subject builds the notification subject line for a submission.
func Subject(sub domain.ContactSubmission) string {
	return fmt.Sprintf("New Contact Form - %s %s", sub.Firstname, sub.Lastname)
}

// Body builds the plain-text notification body for a submission.
func Body(sub domain.ContactSubmission, now time.Time) string {
	return fmt.Sprintf(
		"New contact form submission:\n\nName: %s %s\nSubject: %s\nTimestamp: %s\n",
		sub.Firstname, sub.Lastname, sub.Subject, now.Format("2006-01-02 15:04:05"),
	)
}

// Noop discards every message. For development and tests.
type Noop struct{}

func (Noop) Send(ctx context.Context, sub domain.ContactSubmission) error {
	return nil
}
