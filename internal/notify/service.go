package notify

import (
	"context"

	"github.com/google/uuid"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/logger"
	"rentivo-backend/internal/repository"
)

type notifier struct {
	dispatcher *Dispatcher
	email      Channel
	sms        Channel
	push       Channel
	devices    repository.DeviceRepository
	notes      repository.NotificationRepository
}

// NewNotifier wires the channel fan-out. Any channel may be nil when its
// backend is not configured; it is simply skipped.
func NewNotifier(
	dispatcher *Dispatcher,
	email, sms, push Channel,
	devices repository.DeviceRepository,
	notes repository.NotificationRepository,
) Notifier {
	return &notifier{
		dispatcher: dispatcher,
		email:      email,
		sms:        sms,
		push:       push,
		devices:    devices,
		notes:      notes,
	}
}

// NotifyUser persists the in-app record and dispatches one independent task
// per channel and recipient address. Nothing here returns an error to the
// caller: channel failures are logged inside the dispatcher, and record or
// token lookup failures are logged here.
func (n *notifier) NotifyUser(ctx context.Context, user *domain.User, title, message string) {
	if user == nil {
		return
	}

	record := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Title:   title,
		Message: message,
	}
	if err := n.notes.Create(ctx, record); err != nil {
		logger.Error("Failed to persist notification record", "user_id", user.ID, "error", err)
	}

	if n.email != nil && user.Email != "" {
		n.dispatcher.Dispatch(n.email, Message{Recipient: user.Email, Subject: title, Body: message})
	}
	if n.sms != nil && user.Phone != "" {
		n.dispatcher.Dispatch(n.sms, Message{Recipient: user.Phone, Subject: title, Body: message})
	}
	if n.push != nil {
		tokens, err := n.devices.ListTokensByUser(ctx, user.ID)
		if err != nil {
			logger.Error("Failed to load push tokens", "user_id", user.ID, "error", err)
			return
		}
		for _, token := range tokens {
			n.dispatcher.Dispatch(n.push, Message{Recipient: token, Subject: title, Body: message})
		}
	}
}
