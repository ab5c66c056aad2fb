package reviewrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/review"
	"supplyflow/internal/pkg/errs"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReviewRepository creates a new GORM review repository.
func NewGormReviewRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewRepository {
	return &GormReviewRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new review. A unique-index violation on order_id means another
// review won the race and surfaces as review.ErrDuplicateReview. Requires the
// connection to be opened with gorm error translation enabled.
func (r *GormReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review.ErrDuplicateReview
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOrder retrieves the review left for an order.
func (r *GormReviewRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*review.Review, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ReviewDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("review for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsForOrder reports whether the order already has a review.
func (r *GormReviewRepository) ExistsForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
