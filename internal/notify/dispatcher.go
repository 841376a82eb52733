package notify

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"rentivo-backend/internal/logger"
)

// Dispatcher runs notification sends on a bounded worker pool. Each send is
// an independent task with its own timeout and error boundary, so one
// channel's outage never delays or fails another send or the caller.
type Dispatcher struct {
	pool    *ants.Pool
	timeout time.Duration
}

func NewDispatcher(poolSize int, sendTimeout time.Duration) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		pool:    pool,
		timeout: sendTimeout,
	}, nil
}

// Dispatch submits one send to the pool and returns immediately. Failures
// (including a full pool) are logged and dropped.
func (d *Dispatcher) Dispatch(ch Channel, msg Message) {
	err := d.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Notification send panicked", "channel", ch.Name(), "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := ch.Send(ctx, msg); err != nil {
			logger.Error("Notification send failed",
				"channel", ch.Name(), "recipient", msg.Recipient, "error", err)
			return
		}
		logger.Debug("Notification sent", "channel", ch.Name(), "recipient", msg.Recipient)
	})
	if err != nil {
		logger.Error("Failed to submit notification task", "channel", ch.Name(), "error", err)
	}
}

// Shutdown releases the worker pool.
func (d *Dispatcher) Shutdown() {
	logger.Info("Shutting down notification dispatcher", "running_workers", d.pool.Running())
	d.pool.Release()
}
