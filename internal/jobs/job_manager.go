package jobs

import (
	"fmt"
	"log/slog"

	"supplyflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationRetryJob *NotificationRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	notificationUoWFactory commands.NotificationUoWFactory,
	emitter notificationEmitter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRetryJob: NewNotificationRetryJob(notificationUoWFactory, emitter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationRetryJob.Stop()
}
