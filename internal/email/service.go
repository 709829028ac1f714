package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/healthvault/health-api/pkg/logger"
)

type Service interface {
	SendShareInvite(ctx context.Context, to, name, accessCode, shareLink string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService sends mail through the configured SMTP relay.
func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendShareInvite(ctx context.Context, to, name, accessCode, shareLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Health records shared with you")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hello %s,</p><p>Health records have been shared with you.</p>"+
			"<p>Access code: <b>%s</b></p><p>Link: <a href=%q>%s</a></p>",
		name, accessCode, shareLink, shareLink,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send share invite: %w", err)
	}
	return nil
}

type noopService struct {
	log *logger.Logger
}

// NewNoopService logs instead of sending; used when SMTP is not
// configured.
func NewNoopService(log *logger.Logger) Service {
	return &noopService{log: log}
}

func (s *noopService) SendShareInvite(ctx context.Context, to, name, accessCode, shareLink string) error {
	s.log.WithFields(map[string]interface{}{
		"to":          to,
		"access_code": accessCode,
	}).Info("email disabled, skipping share invite")
	return nil
}
