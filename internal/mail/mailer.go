// Package mail sends transactional email, currently only password resets.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer delivers a plain-text message to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Send delivers the message via SMTP.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg))
}

// LogMailer logs messages instead of sending them. Used in development when
// no SMTP relay is configured.
type LogMailer struct{}

// Send logs the message.
func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail (not sent) to=%s subject=%q\n%s", to, subject, body)
	return nil
}
