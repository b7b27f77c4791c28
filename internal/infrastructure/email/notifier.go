package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/domain/contribution"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

// NotifierConfig holds contribution notifier configuration
type NotifierConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	ServiceName    string
}

const reviewedTemplate = `
<html>
  <body>
    <p>Hello,</p>
    <p>Your translation suggestion for <strong>{{.Key}}</strong> ({{.Language}}) on {{.ServiceName}} was <strong>{{.Outcome}}</strong>.</p>
    <blockquote>{{.Value}}</blockquote>
    <p>Thank you for contributing!</p>
  </body>
</html>`

// ContributionNotifier sends moderation outcome emails through SendGrid.
type ContributionNotifier struct {
	config *NotifierConfig
	logger *logrus.Logger
	client *sendgrid.Client
	tmpl   *template.Template
}

// NewContributionNotifier creates a new SendGrid-backed notifier.
func NewContributionNotifier(config *NotifierConfig, logger *logrus.Logger) (ports.ContributionNotifier, error) {
	tmpl, err := template.New("reviewed").Parse(reviewedTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template: %w", err)
	}

	return &ContributionNotifier{
		config: config,
		logger: logger,
		client: sendgrid.NewSendClient(config.SendGridAPIKey),
		tmpl:   tmpl,
	}, nil
}

// NotifyReviewed emails the submitter about the moderation outcome.
func (n *ContributionNotifier) NotifyReviewed(ctx context.Context, c *contribution.Contribution) error {
	outcome := "approved"
	if c.Status == translation.StatusRejected {
		outcome = "rejected"
	}

	data := struct {
		ServiceName string
		Key         string
		Language    string
		Value       string
		Outcome     string
	}{
		ServiceName: n.config.ServiceName,
		Key:         c.Key,
		Language:    c.LanguageCode,
		Value:       c.Value,
		Outcome:     outcome,
	}

	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	from := mail.NewEmail(n.config.FromName, n.config.FromEmail)
	recipient := mail.NewEmail("", c.SubmitterEmail)
	subject := fmt.Sprintf("Your translation for %q was %s", c.Key, outcome)
	message := mail.NewSingleEmail(from, subject, recipient, "", buf.String())

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		n.logger.WithFields(logrus.Fields{
			"to":      c.SubmitterEmail,
			"subject": subject,
		}).WithError(err).Error("Failed to send notification email")
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"to":          c.SubmitterEmail,
		"status_code": response.StatusCode,
	}).Info("Notification email sent")

	return nil
}
