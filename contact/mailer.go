// Package contact implements the contact page and its single external
// collaborator: the outbound mail transport. The rest of the application sees
// only the Mailer interface; the SMTP details, the pre-shared sender account,
// and the fixed recipient live behind it.
package contact

import (
	"fmt"
	"net/smtp"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/config"
)

// Mailer delivers a contact-page message. Implementations report a delivery
// failure as an ExternalServiceError; the handler surfaces it to the caller
// instead of pretending the message went out.
type Mailer interface {
	Send(name, email, body string) error
}

// SMTPMailer sends contact messages through an SMTP server with STARTTLS and
// plain authentication. Sender, credential, and recipient come from process
// configuration, never from the request.
type SMTPMailer struct {
	cfg *config.MailConfig
}

// NewSMTPMailer creates an SMTPMailer from the mail configuration.
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one contact message. The call is synchronous and blocks the
// handling request; that is accepted behavior for this application.
func (m *SMTPMailer) Send(name, email, body string) error {
	msg := buildMessage(name, email, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
		return apperror.NewExternalServiceError("failed to send contact message", err)
	}
	return nil
}

// buildMessage renders the wire form of a contact message: a subject naming
// the sender, then the reply address and the message text.
func buildMessage(name, email, body string) []byte {
	return []byte(fmt.Sprintf(
		"Subject: Message from %s\r\n\r\nEmail: %s\r\nMessage:\r\n%s\r\n",
		name, email, body,
	))
}
