package jobs

import (
	"rentivo-backend/internal/config"
	"rentivo-backend/internal/logger"
	"rentivo-backend/internal/notify"
	"rentivo-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings repository.BookingRepository
	items    repository.ItemRepository
	users    repository.UserRepository
	notifier notify.Notifier
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	bookings repository.BookingRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	notifier notify.Notifier,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		items:    items,
		users:    users,
		notifier: notifier,
		config:   cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendOverdueReminders()
}
