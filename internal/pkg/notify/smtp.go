package notify

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer sends mail over plain SMTP with auth. When credentials are not
// configured it logs the message instead of sending, so development setups
// work without a mail server.
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// Send delivers a single HTML message.
func (m *SMTPMailer) Send(toAddress, subject, htmlBody string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toAddress).
			Str("subject", subject).
			Msg("SMTP credentials not configured - notification logged instead of sent")
		return nil
	}

	from := m.config.FromEmail
	if from == "" {
		from = m.config.Username
	}

	headers := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		m.config.FromName, from, toAddress, subject)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, from, []string{toAddress}, []byte(headers+htmlBody)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toAddress, err)
	}
	return nil
}
