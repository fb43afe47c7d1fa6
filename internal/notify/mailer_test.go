package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/services"
)

var (
	_ services.Mailer         = (*SMTPMailer)(nil)
	_ services.Mailer         = LogMailer{}
	_ services.EventPublisher = (*AMQPPublisher)(nil)
	_ services.EventPublisher = NopPublisher{}
)

func TestSMTPMailerRejectsBadAddresses(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "not an address"})
	err := m.Send(context.Background(), "ops@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sender")

	m = NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "noreply@example.com"})
	err = m.Send(context.Background(), "broken", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestSMTPMailerAuthOnlyWithUsername(t *testing.T) {
	anon := NewSMTPMailer(SMTPConfig{Host: "relay", Port: 25})
	assert.Len(t, anon.options(), 2)

	authed := NewSMTPMailer(SMTPConfig{Host: "relay", Port: 587, Username: "u", Password: "p"})
	assert.Len(t, authed.options(), 5)
}

func TestFallbacksNeverFail(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), "a@example.com", "s", "b"))
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), services.DeliveryEvent{Type: services.EventCompleted}))
}
