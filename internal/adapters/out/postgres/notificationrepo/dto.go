// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
)

// NotificationDTO represents the database structure for persisting
// notifications. Delivered is indexed because the retry job scans for
// undelivered rows.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Kind        int
	SubjectID   uuid.UUID `gorm:"type:uuid"`
	Message     string
	CreatedAt   time.Time

	Delivered   bool `gorm:"index"`
	DeliveredAt *time.Time
	Attempts    int
	ReadAt      *time.Time
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          aggregate.ID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		Kind:        int(aggregate.Kind()),
		SubjectID:   aggregate.SubjectID().Bytes(),
		Message:     aggregate.Message(),
		CreatedAt:   aggregate.CreatedAt(),
		Delivered:   aggregate.IsDelivered(),
		DeliveredAt: aggregate.DeliveredAt(),
		Attempts:    aggregate.Attempts(),
		ReadAt:      aggregate.ReadAt(),
	}
}

// toDomain converts a database DTO to a notification using
// RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	subjectID, err := kernel.UUIDFromBytes(dto.SubjectID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, recipientID, notification.Kind(dto.Kind), subjectID,
		dto.Message, dto.CreatedAt,
		dto.Delivered, dto.DeliveredAt, dto.Attempts, dto.ReadAt,
	)
}
