package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"supplyflow/internal/core/application/usecases/commands"
	"supplyflow/internal/core/domain/model/notification"
)

const (
	// retryBatchSize caps how many undelivered notifications one tick takes on.
	retryBatchSize = 100

	// maxDeliveryAttempts bounds redelivery; rows past it are left for an
	// operator instead of hammering a dead sink forever.
	maxDeliveryAttempts = 10
)

// notificationEmitter performs one delivery attempt and records its outcome.
// Satisfied by notifications.Dispatcher.
type notificationEmitter interface {
	Emit(ctx context.Context, n *notification.Notification)
}

// NotificationRetryJob re-emits notifications the sink did not accept on the
// first try. Notification ids are the idempotency keys, so a consumer seeing
// the same notification twice is harmless.
type NotificationRetryJob struct {
	uowFactory commands.NotificationUoWFactory
	emitter    notificationEmitter
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewNotificationRetryJob creates a job that redelivers undelivered
// notifications every thirty seconds.
func NewNotificationRetryJob(
	uowFactory commands.NotificationUoWFactory,
	emitter notificationEmitter,
	logger *slog.Logger,
) *NotificationRetryJob {
	return &NotificationRetryJob{
		uowFactory: uowFactory,
		emitter:    emitter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "notification_retry_job"),
	}
}

// Start begins the retry job.
func (j *NotificationRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.runOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Notification retry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started (running every 30s)")
	return nil
}

// Stop stops the retry job.
func (j *NotificationRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}

func (j *NotificationRetryJob) runOnce(ctx context.Context) error {
	pending, err := j.loadUndelivered(ctx)
	if err != nil {
		return err
	}

	for _, n := range pending {
		if n.Attempts() >= maxDeliveryAttempts {
			j.logger.WarnContext(ctx, "Notification exceeded delivery attempts",
				"notificationID", n.ID(), "attempts", n.Attempts())
			continue
		}
		j.emitter.Emit(ctx, n)
	}

	return nil
}

func (j *NotificationRetryJob) loadUndelivered(
	ctx context.Context,
) ([]*notification.Notification, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.NotificationRepository().GetAllUndelivered(ctx, retryBatchSize)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return pending, nil
}
