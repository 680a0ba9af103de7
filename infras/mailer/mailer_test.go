package mailer

import (
	"bytes"
	"context"
	"hotel/config"
	"hotel/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(host string) *config.Config {
	cfg := &config.Config{}
	cfg.SMTP.Host = host
	cfg.SMTP.Port = 587
	cfg.SMTP.From = "noreply@hotel.com"

	return cfg
}

func TestMailer_DisabledWithoutHost(t *testing.T) {
	m := New(newConfig(""), mocks.NewOtel())

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send(context.Background(), Email{To: "jane@example.com"}), ErrNotConfigured)
}

func TestMailer_BuildMessage(t *testing.T) {
	m := &mailerImpl{config: newConfig("smtp.example.com"), otel: mocks.NewOtel()}

	msg, err := m.buildMessage(Email{
		To:      "jane@example.com",
		Subject: "We received your message - Hotel Management",
		Body:    "Dear Jane",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "To: <jane@example.com>")
	assert.Contains(t, buf.String(), "From: <noreply@hotel.com>")
	assert.Contains(t, buf.String(), "Subject: We received your message - Hotel Management")
	assert.Contains(t, buf.String(), "Dear Jane")
}

func TestMailer_BuildMessageInvalidRecipient(t *testing.T) {
	m := &mailerImpl{config: newConfig("smtp.example.com"), otel: mocks.NewOtel()}

	_, err := m.buildMessage(Email{To: "not an address"})
	assert.ErrorContains(t, err, "invalid recipient address")
}

func TestMailer_ClientOptions(t *testing.T) {
	cfg := newConfig("smtp.example.com")
	m := &mailerImpl{config: cfg}
	assert.Len(t, m.clientOptions(), 2)

	cfg.SMTP.Username = "mailer"
	cfg.SMTP.Password = "secret"
	assert.Len(t, m.clientOptions(), 5)
}
