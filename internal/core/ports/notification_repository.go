package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists delivery and read-state changes.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllUndelivered retrieves notifications the sink has not accepted
	// yet, oldest first, capped at limit. The retry job feeds on this.
	GetAllUndelivered(ctx context.Context, limit int) ([]*notification.Notification, error)

	// GetAllByRecipient retrieves a recipient's notifications, newest first.
	GetAllByRecipient(ctx context.Context, recipientID kernel.UUID) ([]*notification.Notification, error)
}
