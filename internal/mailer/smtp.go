package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/aicuts/faceshape-api/internal/domain"
)

// SMTPConfig holds the relay settings. The configured address is both sender
// and recipient: submissions are relayed to the site owner's own inbox.
type SMTPConfig struct {
	Host     string
	Port     int
	Address  string
	Password string
}

// SMTP implements Mailer over an authenticated STARTTLS SMTP session.
type SMTP struct {
	client *gomail.Client
	config SMTPConfig
}

// NewSMTP creates an SMTP mailer.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Address == "" || cfg.Password == "" {
		return nil, errors.New("smtp mailer requires EMAIL_ADDRESS and EMAIL_PASSWORD")
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Address),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTP{client: client, config: cfg}, nil
}

// Send relays the submission. Transport failures come back wrapped; callers
// surface only a generic delivery error to the client.
func (m *SMTP) Send(ctx context.Context, sub domain.ContactSubmission) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.config.Address); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.config.Address); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(Subject(sub))
	msg.SetBodyString(gomail.TypeTextPlain, Body(sub, time.Now()))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
