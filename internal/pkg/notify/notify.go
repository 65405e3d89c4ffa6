package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bkassahun/courseload/internal/app/models"
)

// Dispatcher delivers workflow notifications. Delivery is best effort:
// callers fire and forget, and a delivery failure must never fail the
// transition that triggered it.
type Dispatcher interface {
	CourseTransitioned(toEmail, toName string, course *models.Course, entry *models.ApprovalEntry) error
	PaymentSaved(toEmail, toName string, pay *models.Payment) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPDispatcher implements Dispatcher over plain SMTP
type SMTPDispatcher struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPDispatcher creates a new SMTP-backed dispatcher
func NewSMTPDispatcher(config SMTPConfig, logger zerolog.Logger) Dispatcher {
	return &SMTPDispatcher{
		config: config,
		logger: logger,
	}
}

// CourseTransitioned notifies the affected instructor that a reviewer acted
// on one of their courses.
func (d *SMTPDispatcher) CourseTransitioned(toEmail, toName string, course *models.Course, entry *models.ApprovalEntry) error {
	subject := fmt.Sprintf("Course %s: %s by %s", course.Code, strings.ToLower(string(entry.Action)), entry.Role)

	body := fmt.Sprintf("Hello %s,\r\n\r\nCourse %s (%s) was moved to status %s.\r\n",
		toName, course.Code, course.Title, entry.StatusAfter)
	if entry.Remarks != "" {
		body += fmt.Sprintf("Remarks: %s\r\n", entry.Remarks)
	}

	return d.send(toEmail, subject, body)
}

// PaymentSaved notifies an instructor that a payment record was created or
// updated for them.
func (d *SMTPDispatcher) PaymentSaved(toEmail, toName string, pay *models.Payment) error {
	subject := fmt.Sprintf("Overload payment recorded for %d/%s", pay.AcademicYear, pay.Semester)
	body := fmt.Sprintf("Hello %s,\r\n\r\nAn overload payment totaling %.2f has been recorded for you for %d (%s semester).\r\n",
		toName, pay.TotalAmount, pay.AcademicYear, pay.Semester)
	return d.send(toEmail, subject, body)
}

func (d *SMTPDispatcher) send(toEmail, subject, body string) error {
	// Without SMTP credentials, log the message instead of sending. Keeps
	// development environments working without a mail server.
	if d.config.Username == "" || d.config.Password == "" {
		d.logger.Info().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - notification logged instead of sent")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", d.config.Host, d.config.Port)
	auth := smtp.PlainAuth("", d.config.Username, d.config.Password, d.config.Host)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		d.config.FromName, d.config.FromEmail, toEmail, subject, body)

	if err := smtp.SendMail(addr, auth, d.config.FromEmail, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
