package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type smsChannel struct {
	client *twilio.RestClient
	from   string
}

func NewSMSChannel(accountSID, authToken, fromNumber string, timeout time.Duration) Channel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.SetTimeout(timeout)
	return &smsChannel{
		client: client,
		from:   fromNumber,
	}
}

func (c *smsChannel) Name() string { return "sms" }

func (c *smsChannel) Send(ctx context.Context, msg Message) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(msg.Recipient)
	params.SetFrom(c.from)
	params.SetBody(msg.Body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio message create failed: %w", err)
	}
	return nil
}
