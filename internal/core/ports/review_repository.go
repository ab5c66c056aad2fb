package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews. The storage
// enforces at most one review per order with a unique index; Add surfaces a
// violation as review.ErrDuplicateReview.
type ReviewRepository interface {
	// Add persists a new review.
	Add(ctx context.Context, aggregate *review.Review) error

	// GetByOrder retrieves the review left for an order.
	// Returns errs.ObjectNotFoundError when the order has none.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*review.Review, error)

	// ExistsForOrder reports whether the order already has a review.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
