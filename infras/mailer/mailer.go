package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Email is a plain text message to a single recipient.
type Email struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
	Enabled() bool
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, ot otel.Otel) Mailer {
	if config.SMTP.Host == "" {
		log.Warn().Msg("SMTP host not configured, emails will be skipped")
	}

	return &mailerImpl{
		config: config,
		otel:   ot,
	}
}

func (m *mailerImpl) Enabled() bool {
	return m.config.SMTP.Host != ""
}

// Send dials the SMTP server for every message.
func (m *mailerImpl) Send(ctx context.Context, email Email) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !m.Enabled() {
		return ErrNotConfigured
	}

	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.config.SMTP.Host, m.clientOptions()...)
	if err != nil {
		log.Error().Err(err).Msg("failed to create smtp client")

		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("subject", email.Subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Debug().Str("subject", email.Subject).Msg("email sent")

	return nil
}

func (m *mailerImpl) buildMessage(email Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(m.config.SMTP.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	return msg, nil
}

func (m *mailerImpl) clientOptions() []mail.Option {
	options := []mail.Option{
		mail.WithPort(m.config.SMTP.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if m.config.SMTP.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.SMTP.Username),
			mail.WithPassword(m.config.SMTP.Password),
		)
	}

	return options
}
