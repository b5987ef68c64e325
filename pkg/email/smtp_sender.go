package email

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implements ServiceInterface over a plain SMTP relay.
type SMTPSender struct {
	dialer    smtpDialer
	fromEmail string
}

func NewSMTPSender(host string, port int, username, password, fromEmail string) *SMTPSender {
	return &SMTPSender{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
	}
}

// SendEmail sends a text body with an HTML alternative. gomail has no
// context support, so ctx is only checked before dialing.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainTextContent)
	if htmlContent != "" {
		m.AddAlternative("text/html", htmlContent)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("Failed to send email via SMTP: %v", err)
		return fmt.Errorf("email.SMTPSender: %w", err)
	}

	log.Printf("Successfully sent email to %s", to)
	return nil
}
