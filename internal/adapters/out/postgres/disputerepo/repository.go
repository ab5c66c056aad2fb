package disputerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
)

// GormDisputeRepository implements DisputeRepository using GORM.
type GormDisputeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDisputeRepository creates a new GORM dispute repository.
func NewGormDisputeRepository(db *gorm.DB, tracker aggregateTracker) *GormDisputeRepository {
	return &GormDisputeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new dispute and its opening message to the database.
func (r *GormDisputeRepository) Add(ctx context.Context, aggregate *dispute.Dispute) error {
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

// Update saves sub-state changes and appends new thread messages. Existing
// messages are immutable; the upsert ignores rows that already exist.
func (r *GormDisputeRepository) Update(ctx context.Context, aggregate *dispute.Dispute) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DisputeDTO{}).
		Omit(clause.Associations).
		Where("id = ?", dto.ID).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Messages) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Messages).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a dispute by ID, thread included.
func (r *GormDisputeRepository) Get(ctx context.Context, id kernel.UUID) (*dispute.Dispute, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DisputeDTO
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("dispute_messages.position ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispute", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByOrder retrieves the order's unresolved dispute, if any.
func (r *GormDisputeRepository) GetOpenByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*dispute.Dispute, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DisputeDTO
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("dispute_messages.position ASC")
		}).
		First(&dto, "order_id = ? AND status <> ?", orderID.Bytes(), int(dispute.Resolved)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispute for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
