package email

import (
	"context"
	"crypto/tls"
	"strings"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	mail "github.com/go-mail/mail"
)

// SenderConfig represents SMTP configuration
type SenderConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// transport is the part of the go-mail dialer the sender depends on
type transport interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPSender implements ports.EmailSender on top of go-mail.
// A new dialer is built for every message.
type SMTPSender struct {
	config       SenderConfig
	logger       ports.Logger
	newTransport func(cfg SenderConfig) transport
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(config SenderConfig, logger ports.Logger) *SMTPSender {
	return &SMTPSender{
		config:       config,
		logger:       logger,
		newTransport: newDialer,
	}
}

func newDialer(cfg SenderConfig) transport {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d
}

// SendEmail delivers msg to every recipient in msg.To
func (s *SMTPSender) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	recipients := normalizeRecipients(msg.To)
	if len(recipients) == 0 {
		return errors.NewValidationError("at least one recipient is required")
	}
	if msg.Subject == "" {
		return errors.NewValidationError("email subject cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return errors.NewEmailError("email send cancelled", err)
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.newTransport(s.config).DialAndSend(m); err != nil {
		s.logger.Error("Error sending email",
			ports.F("error", err),
			ports.F("to", recipients),
			ports.F("subject", msg.Subject))
		return errors.NewEmailError("failed to send email", err)
	}

	s.logger.Info("Email sent",
		ports.F("to", recipients),
		ports.F("subject", msg.Subject))
	return nil
}

// ValidateConfiguration validates the sender configuration
func (s *SMTPSender) ValidateConfiguration() error {
	if s.config.Host == "" {
		return errors.NewConfigurationError("SMTP host cannot be empty", nil)
	}
	if s.config.Port < 1 || s.config.Port > 65535 {
		return errors.NewConfigurationError("SMTP port must be between 1 and 65535", nil)
	}
	if !strings.Contains(s.config.From, "@") {
		return errors.NewConfigurationError("from address must be a valid email address", nil)
	}
	return nil
}

// normalizeRecipients drops blank entries and surrounding whitespace
func normalizeRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
