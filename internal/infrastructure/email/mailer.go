package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// NewMailer builds the configured mailer. A disabled configuration yields
// a mailer that only logs, so development setups need no SMTP relay.
func NewMailer(settings *config.SMTPSettings, logger logger.Logger) (Mailer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp settings: %w", err)
	}

	if !settings.Enabled {
		return &noopMailer{logger: logger}, nil
	}

	var auth smtp.Auth
	if settings.Username != "" {
		auth = smtp.PlainAuth("", settings.Username, settings.Password, settings.Host)
	}
	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%d", settings.Host, settings.Port),
		from:   settings.From,
		auth:   auth,
		logger: logger,
	}, nil
}

// smtpMailer sends mail through a plain SMTP relay
type smtpMailer struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger logger.Logger
}

// Send delivers the message through the configured relay
func (m *smtpMailer) Send(ctx context.Context, msg *Message) error {
	// net/smtp has no context support; honor cancellation before dialing
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, buildMIME(m.from, msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	m.logger.Info("Sent email to ", msg.To)
	return nil
}

// noopMailer logs instead of sending
type noopMailer struct {
	logger logger.Logger
}

// Send logs the message and drops it
func (m *noopMailer) Send(ctx context.Context, msg *Message) error {
	m.logger.Info("Email delivery disabled, dropping message to ", msg.To, " with subject ", msg.Subject)
	return nil
}

// buildMIME renders the message as a minimal text/plain MIME document
func buildMIME(from string, msg *Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
