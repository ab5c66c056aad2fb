// Package ports defines the contracts between the application core and
// infrastructure adapters: persistence, the unit of work, outbound messaging
// and external advisory services.
package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without any
	// concurrency guard. Used when the caller already holds the row.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithGuard persists the aggregate only if the stored status still
	// equals expected. The expected status is part of the UPDATE predicate,
	// so of two concurrent writers exactly one succeeds; the loser gets
	// order.ErrStaleState.
	UpdateWithGuard(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByContractor retrieves the contractor's orders, newest first.
	GetAllByContractor(ctx context.Context, contractorID kernel.UUID) ([]*order.Order, error)
}
