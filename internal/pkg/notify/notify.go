// Package notify delivers best-effort transactional email. Dispatch is
// fire-and-forget: a failed or panicking send is logged and never surfaces
// to the operation that triggered it.
package notify

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Template keys understood by the dispatcher.
const (
	TemplateInterestConfirmation   = "interest_confirmation"
	TemplateNewRequestMatchmaker   = "new_request_matchmaker"
	TemplateStatusChange           = "status_change"
	TemplateInterestApprovedTarget = "interest_approved_target"
)

// Vars carries the template substitution values.
type Vars map[string]string

// Notifier is the contract consumed by the services. Implementations must
// return immediately; delivery happens in the background.
type Notifier interface {
	Notify(toAddress, templateKey string, vars Vars)
}

// Mailer sends a single rendered message. Synchronous; the dispatcher
// wraps it.
type Mailer interface {
	Send(toAddress, subject, htmlBody string) error
}

// Dispatcher renders templates and hands them to a Mailer on a fresh
// goroutine.
type Dispatcher struct {
	mailer Mailer
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(mailer Mailer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, logger: logger}
}

// Notify renders the template and dispatches it in the background. Unknown
// template keys are logged and dropped.
func (d *Dispatcher) Notify(toAddress, templateKey string, vars Vars) {
	subject, body, err := renderTemplate(templateKey, vars)
	if err != nil {
		d.logger.Error().Err(err).Str("template", templateKey).Msg("Failed to render notification template")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Interface("panic", r).Str("toEmail", toAddress).Msg("Recovered from panic in notification dispatch")
			}
		}()

		if err := d.mailer.Send(toAddress, subject, body); err != nil {
			d.logger.Error().Err(err).
				Str("toEmail", toAddress).
				Str("template", templateKey).
				Msg("Failed to send notification email")
			return
		}
		d.logger.Debug().Str("toEmail", toAddress).Str("template", templateKey).Msg("Notification email sent")
	}()
}

func renderTemplate(templateKey string, vars Vars) (subject, body string, err error) {
	switch templateKey {
	case TemplateInterestConfirmation:
		subject = "Your interest was submitted - Bashert"
		body = htmlBody(fmt.Sprintf(
			`<p>Hello %s,</p>
			<p>Your expression of interest on behalf of <strong>%s</strong> toward <strong>%s</strong> at the event "%s" was submitted.</p>
			<p>The event's matchmaker will review it and keep you updated.</p>`,
			vars["recipientName"], vars["requesterName"], vars["targetName"], vars["eventName"]))
	case TemplateNewRequestMatchmaker:
		subject = "New interest request awaiting review - Bashert"
		body = htmlBody(fmt.Sprintf(
			`<p>Hello %s,</p>
			<p>A new interest request was submitted at your event "%s": <strong>%s</strong> expressed interest in <strong>%s</strong>.</p>
			<p>Please review it in your matchmaker dashboard.</p>`,
			vars["recipientName"], vars["eventName"], vars["requesterName"], vars["targetName"]))
	case TemplateStatusChange:
		subject = "Update on your interest request - Bashert"
		body = htmlBody(fmt.Sprintf(
			`<p>Hello %s,</p>
			<p>The status of your interest request toward <strong>%s</strong> at the event "%s" changed to: <strong>%s</strong>.</p>`,
			vars["recipientName"], vars["targetName"], vars["eventName"], vars["status"]))
	case TemplateInterestApprovedTarget:
		subject = "Someone is interested in your profile - Bashert"
		body = htmlBody(fmt.Sprintf(
			`<p>Hello %s,</p>
			<p>Good news: an interest request toward <strong>%s</strong> at the event "%s" was approved by the matchmaker.</p>
			<p><strong>%s</strong> expressed the interest. The matchmaker will be in touch with the details.</p>`,
			vars["recipientName"], vars["targetName"], vars["eventName"], vars["requesterName"]))
	default:
		return "", "", fmt.Errorf("unknown notification template: %s", templateKey)
	}
	return subject, body, nil
}

func htmlBody(inner string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				%s
				<p>Best regards,<br>The Bashert Team</p>
			</div>
		</body>
		</html>
	`, inner)
}
