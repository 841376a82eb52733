package jobs

import (
	"context"
	"fmt"
	"time"

	"rentivo-backend/internal/logger"
)

// SendOverdueReminders notifies the renter and the owner of every ONGOING
// booking whose effective end date (extension included) has passed.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.bookings.ListOverdueOngoing(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue bookings", "error", err)
			return
		}

		for _, booking := range overdue {
			item, err := jr.items.GetByID(ctx, booking.ItemID)
			if err != nil {
				logger.Error("Failed to load item for overdue booking", "booking_id", booking.ID, "error", err)
				continue
			}

			due := booking.EffectiveEndDate().Format("2006-01-02")
			if renter, err := jr.users.GetByID(ctx, booking.RenterID); err == nil {
				jr.notifier.NotifyUser(ctx, renter, "Rental Overdue",
					fmt.Sprintf("Your rental of %s was due back on %s. Please return it or request an extension.", item.Title, due))
			}
			if owner, err := jr.users.GetByID(ctx, item.OwnerID); err == nil {
				jr.notifier.NotifyUser(ctx, owner, "Rental Overdue",
					fmt.Sprintf("The rental of your item %s was due back on %s.", item.Title, due))
			}
		}

		logger.Info("Sent overdue reminders", "count", len(overdue))
	})
}
