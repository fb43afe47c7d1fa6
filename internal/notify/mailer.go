// Package notify delivers messages outside the process: supplier emails over
// SMTP and delivery lifecycle events over AMQP.
package notify

import (
	"context"
	"fmt"

	logrus "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer dials the relay for every message; volume is a handful of
// completions per hour.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host, m.options()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

// LogMailer only logs. It stands in when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{"email": to, "subject": subject}).
		Info("SMTP_HOST not set, notification not sent")
	return nil
}
