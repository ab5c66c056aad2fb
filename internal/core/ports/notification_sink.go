package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/notification"
)

// NotificationSink is the outbound channel notifications are pushed through
// (message broker, push gateway). Delivery is at-least-once: the dispatcher
// and the retry job may emit the same notification more than once, and the
// notification id is the consumer-side idempotency key.
type NotificationSink interface {
	// Emit pushes one notification. An error means the sink did not accept
	// it and the notification stays undelivered.
	Emit(ctx context.Context, n *notification.Notification) error
}
