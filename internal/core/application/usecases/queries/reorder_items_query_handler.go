package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
	"supplyflow/internal/pkg/errs"
)

// ReorderItemsQueryHandler rebuilds a cart from a past order's line items,
// filtering out products the catalog no longer offers.
type ReorderItemsQueryHandler struct {
	db      *gorm.DB
	catalog ports.CatalogLookup
	policy  services.AccessPolicy
}

// NewReorderItemsQueryHandler creates a handler for reorder proposals.
func NewReorderItemsQueryHandler(db *gorm.DB, catalog ports.CatalogLookup) ReorderItemsQueryHandler {
	return ReorderItemsQueryHandler{
		db:      db,
		catalog: catalog,
		policy:  services.NewAccessPolicy(),
	}
}

// Handle executes the query. Only the contractor who placed the order may
// reorder it; unavailable products are dropped and counted instead of failing
// the whole request.
func (h ReorderItemsQueryHandler) Handle(
	ctx context.Context,
	query ReorderItemsQuery,
) (ReorderItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ReorderItemsQueryResponse{}, err
	}

	if err := h.policy.Authorize(services.OpReorderItems, query.ActorRole()); err != nil {
		return ReorderItemsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.contractor_id,
			i.product_id,
			i.name,
			i.quantity,
			i.unit_price_cents
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.id = ?
		ORDER BY i.position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return ReorderItemsQueryResponse{}, err
	}
	defer rows.Close()

	response := ReorderItemsQueryResponse{
		OrderID: query.OrderID(),
		Items:   []CartItem{},
	}

	for rows.Next() {
		var (
			contractorID   uuid.UUID
			productID      uuid.UUID
			name           string
			quantity       int
			unitPriceCents int64
		)
		if err := rows.Scan(&contractorID, &productID, &name, &quantity, &unitPriceCents); err != nil {
			return ReorderItemsQueryResponse{}, err
		}

		owner, err := kernel.UUIDFromBytes(contractorID[:])
		if err != nil {
			return ReorderItemsQueryResponse{}, err
		}
		if !owner.IsEqual(query.ContractorID()) {
			return ReorderItemsQueryResponse{}, services.ErrAccessDenied
		}

		product, err := kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return ReorderItemsQueryResponse{}, err
		}

		available, err := h.catalog.IsAvailable(ctx, product)
		if err != nil {
			return ReorderItemsQueryResponse{}, err
		}
		if !available {
			response.UnavailableCount++
			continue
		}

		response.Items = append(response.Items, CartItem{
			ProductID:      product,
			Name:           name,
			Quantity:       quantity,
			UnitPriceCents: unitPriceCents,
		})
	}
	if err := rows.Err(); err != nil {
		return ReorderItemsQueryResponse{}, err
	}

	// Every order carries at least one item, so an empty join means the order
	// itself does not exist.
	if len(response.Items) == 0 && response.UnavailableCount == 0 {
		return ReorderItemsQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	response.Success = true
	return response, nil
}
