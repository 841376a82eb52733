package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type pushChannel struct {
	client *messaging.Client
}

// NewPushChannel builds the FCM push channel. Message recipients are device
// tokens registered via the devices endpoint.
func NewPushChannel(ctx context.Context, credentialsFile string) (Channel, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}
	return &pushChannel{client: client}, nil
}

func (c *pushChannel) Name() string { return "push" }

func (c *pushChannel) Send(ctx context.Context, msg Message) error {
	_, err := c.client.Send(ctx, &messaging.Message{
		Token: msg.Recipient,
		Notification: &messaging.Notification{
			Title: msg.Subject,
			Body:  msg.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
