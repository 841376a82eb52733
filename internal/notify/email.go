package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailChannel struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewEmailChannel(apiKey, fromName, fromEmail string) Channel {
	return &emailChannel{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail("", msg.Recipient)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	resp, err := c.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send rejected: status %d", resp.StatusCode)
	}
	return nil
}
