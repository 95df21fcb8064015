// Package email sends notification e-mails through Resend. Bodies are
// rendered from HTML templates embedded in the binary.
package email

import (
	"fmt"

	"github.com/deppfellow/agile/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client. Without an API key the client is
// disabled and Enabled reports false.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	if !c.Enabled() {
		return fmt.Errorf("email client is not configured")
	}

	body, err := RenderTemplate(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("to", to).Str("template", string(templateName)).Msg("email sent")
	return nil
}

// SendNotificationEmail mails the content of a notification to its user.
func (c *Client) SendNotificationEmail(to, name, content string) error {
	return c.SendEmail(to, "New notification", TemplateNotification, map[string]string{
		"UserName": name,
		"Content":  content,
	})
}
