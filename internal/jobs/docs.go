// Package jobs provides scheduled background tasks for the order platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationRetryJob - Runs every thirty seconds to redeliver
// notifications the outbound sink did not accept on the first attempt.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(notificationUoWFactory, dispatcher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The retry job logs failures and tries again on the next tick; delivery
//     is at-least-once with the notification id as the idempotency key.
//   - Rows that exceed the attempt bound are logged and left for an operator.
package jobs
