package mailer

import (
	"context"
	"fmt"
	"resto/config"
	"resto/infras/otel"
	"resto/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

type smtpMailer struct {
	cfg  *config.Config
	otel otel.Otel
}

func NewSMTP(cfg *config.Config, otl otel.Otel) Dispatcher {
	return &smtpMailer{
		cfg:  cfg,
		otel: otl,
	}
}

func (s *smtpMailer) client() (*mail.Client, error) {
	smtp := s.cfg.External.Mailer.SMTP

	c, err := mail.NewClient(
		smtp.Host,
		mail.WithPort(smtp.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(smtp.Username),
		mail.WithPassword(smtp.Password),
	)
	if err != nil {
		log.Error().Err(err).Str("host", smtp.Host).Msg("could not initialize smtp client")

		return nil, fmt.Errorf("failed to initialize smtp client: %w", err)
	}

	return c, nil
}

func (s *smtpMailer) SendReservationConfirmation(ctx context.Context, confirmation Confirmation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".smtp.SendReservationConfirmation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.send(ctx, confirmation.Email, s.cfg.External.Mailer.Subject, confirmation.body())
}

func (s *smtpMailer) SendContactMessage(ctx context.Context, contact Contact) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".smtp.SendContactMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	body := fmt.Sprintf("From: %s <%s>\n\n%s\n", contact.Name, contact.Email, contact.Message)

	// contact messages go to the restaurant inbox
	return s.send(ctx, s.cfg.External.Mailer.SMTP.From, contactSubject, body)
}

func (s *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(s.cfg.External.Mailer.FromName, s.cfg.External.Mailer.SMTP.From); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	c, err := s.client()
	if err != nil {
		return err
	}

	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
