package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/kernel"
)

// CatalogLookup answers product availability questions for the reorder flow.
// Implementations may cache aggressively; a short-lived stale answer is
// acceptable because the cart is re-validated at checkout.
type CatalogLookup interface {
	// IsAvailable reports whether the product can currently be ordered.
	IsAvailable(ctx context.Context, productID kernel.UUID) (bool, error)
}
