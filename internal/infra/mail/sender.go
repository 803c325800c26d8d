package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Dialer delivers composed messages. *gomail.Dialer implements it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	dialer Dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return NewEmailSenderWithDialer(gomail.NewDialer(host, port, user, password), from)
}

func NewEmailSenderWithDialer(d Dialer, from string) *EmailSender {
	return &EmailSender{From: from, dialer: d}
}

// SendOutreach sends a multipart email with a plain text body and an HTML alternative
func (s *EmailSender) SendOutreach(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)

	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send outreach email via smtp: %w", err)
	}

	return nil
}
