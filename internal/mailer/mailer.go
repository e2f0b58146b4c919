package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers transactional emails.
type Sender interface {
	SendEmail(to []string, subject, body string) error
}

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

func NewSMTPSender(host string, port int, username, password, from string, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger.Named("SMTPSender"),
	}
}

func (s *SMTPSender) SendEmail(to []string, subject, body string) error {
	if s.host == "" || s.from == "" {
		s.logger.Error("SMTP configuration is incomplete. Email not sent.",
			zap.String("host", s.host), zap.String("sender", s.from))
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send email", zap.Strings("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}
