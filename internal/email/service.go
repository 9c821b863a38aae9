package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/medicore/hospital-api/config"
)

// Service sends operational mail to staff accounts
type Service interface {
	SendWelcome(ctx context.Context, to string, name string, role string) error
	SendCustom(ctx context.Context, to string, subject string, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

type noopService struct {
	logger zerolog.Logger
}

// NewService returns an SMTP-backed sender, or a no-op sender when no
// SMTP host is configured
func NewService(cfg config.SMTPConfig, logger zerolog.Logger) Service {
	if cfg.Host == "" {
		logger.Info().Msg("smtp not configured, email delivery disabled")
		return &noopService{logger: logger}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string, role string) error {
	subject := "Welcome to MediCore HMS"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour %s account has been created. Sign in with this email address to get started.\n",
		name, role)
	return s.SendCustom(ctx, to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func (s *noopService) SendWelcome(_ context.Context, to string, _ string, _ string) error {
	s.logger.Debug().Str("to", to).Msg("email delivery disabled, skipping welcome mail")
	return nil
}

func (s *noopService) SendCustom(_ context.Context, to string, subject string, _ string) error {
	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email delivery disabled, skipping mail")
	return nil
}
