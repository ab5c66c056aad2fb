package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
)

// DisputeRepository defines the persistence contract for dispute aggregates,
// thread messages included.
type DisputeRepository interface {
	// Add persists a new dispute together with its opening message.
	Add(ctx context.Context, aggregate *dispute.Dispute) error

	// Update persists sub-state changes and any appended messages.
	Update(ctx context.Context, aggregate *dispute.Dispute) error

	// Get retrieves a dispute by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such dispute exists.
	Get(ctx context.Context, id kernel.UUID) (*dispute.Dispute, error)

	// GetOpenByOrder retrieves the order's unresolved dispute, if any.
	// Returns errs.ObjectNotFoundError when the order has none.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*dispute.Dispute, error)
}
