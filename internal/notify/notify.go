package notify

import (
	"context"

	"rentivo-backend/internal/domain"
)

// Message is one outbound notification to a single recipient address: an
// email address, a phone number, or a push token depending on the channel.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Channel delivers a message over one medium. Implementations must be safe
// for concurrent use; errors are reported to the caller, which logs and
// never propagates them.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier fans a user-facing notification out to every configured channel
// and records it in-app. All delivery is fire-and-forget.
type Notifier interface {
	NotifyUser(ctx context.Context, user *domain.User, title, message string)
}
