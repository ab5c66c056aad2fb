package notificationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
	"supplyflow/internal/pkg/errs"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification to the database.
func (r *GormNotificationRepository) Add(
	ctx context.Context,
	aggregate *notification.Notification,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves delivery and read-state changes. The mutable columns are
// selected explicitly because the delivered flag and timestamps pass through
// zero values that a non-zero-field update would skip.
func (r *GormNotificationRepository) Update(
	ctx context.Context,
	aggregate *notification.Notification,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("Delivered", "DeliveredAt", "Attempts", "ReadAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUndelivered retrieves notifications the sink has not accepted yet,
// oldest first, capped at limit.
func (r *GormNotificationRepository) GetAllUndelivered(
	ctx context.Context,
	limit int,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("delivered = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByRecipient retrieves a recipient's notifications, newest first.
func (r *GormNotificationRepository) GetAllByRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []NotificationDTO) ([]*notification.Notification, error) {
	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
