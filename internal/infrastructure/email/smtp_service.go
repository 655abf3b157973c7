package email

import (
	"context"
	"fmt"
	"net/smtp"

	"citylocal-backend/pkg/logger"
)

// ContactTicketData carries what the notification mails need about a ticket.
type ContactTicketData struct {
	TicketID string
	Name     string
	Email    string
	Subject  string
	Message  string
}

// Mailer sends the contact-ticket notification mails. Both sends are
// best-effort side effects; callers must not fail on a mail error.
type Mailer interface {
	SendContactNotification(ctx context.Context, data ContactTicketData) error
	SendContactConfirmation(ctx context.Context, data ContactTicketData) error
}

type smtpMailer struct {
	smtpAddr   string
	from       string
	adminEmail string
}

// NewSMTPMailer creates a Mailer backed by a plain SMTP relay.
func NewSMTPMailer(smtpHost, smtpPort, from, adminEmail string) Mailer {
	return &smtpMailer{
		smtpAddr:   smtpHost + ":" + smtpPort,
		from:       from,
		adminEmail: adminEmail,
	}
}

// SendContactNotification mails the site admin about a new support ticket.
func (s *smtpMailer) SendContactNotification(ctx context.Context, data ContactTicketData) error {
	subject := fmt.Sprintf("New support ticket: %s", data.Subject)
	body := fmt.Sprintf(`A new support ticket was submitted.

Ticket:  %s
From:    %s <%s>
Subject: %s

%s`, data.TicketID, data.Name, data.Email, data.Subject, data.Message)

	return s.send(data.TicketID, s.adminEmail, subject, body)
}

// SendContactConfirmation mails the submitter that their ticket was received.
func (s *smtpMailer) SendContactConfirmation(ctx context.Context, data ContactTicketData) error {
	subject := "We received your message"
	body := fmt.Sprintf(`Hi %s,

Thanks for contacting CityLocal 101. We received your message about
"%s" and will get back to you as soon as possible.

Your ticket reference is %s.`, data.Name, data.Subject, data.TicketID)

	return s.send(data.TicketID, data.Email, subject, body)
}

func (s *smtpMailer) send(ticketID, to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.from, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"ticket_id": ticketID,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
