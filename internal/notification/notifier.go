package notification

import (
	"context"
	"fmt"

	"github.com/planora/event-management-backend/internal/booking"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends resolution emails to organizers over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(host string, port int, username, password, from string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *EmailNotifier) NotifyResolution(_ context.Context, req *booking.Request) error {
	resource := "venue"
	if req.Kind == booking.KindService {
		resource = "service"
	}

	var subject, body string
	switch req.Status {
	case booking.StatusConfirmed:
		subject = fmt.Sprintf("Booking confirmed for %q", req.EventName)
		body = fmt.Sprintf(
			"Your %s booking request for %q on %s was confirmed.",
			resource, req.EventName, req.Day.Format("2006-01-02"),
		)
	case booking.StatusRejected:
		subject = fmt.Sprintf("Booking rejected for %q", req.EventName)
		body = fmt.Sprintf(
			"Your %s booking request for %q on %s was rejected.",
			resource, req.EventName, req.Day.Format("2006-01-02"),
		)
		if req.Reason != nil && *req.Reason != "" {
			body += "\n\nReason: " + *req.Reason
		}
	default:
		return fmt.Errorf("request %s is not resolved", req.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", req.OrganizerEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send resolution email failed: %w", err)
	}
	return nil
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyResolution(context.Context, *booking.Request) error {
	return nil
}
