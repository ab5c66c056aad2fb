package queries

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrReorderItemsQueryIsNotConstructed = errors.New(
	"ReorderItemsQuery must be created via NewReorderItemsQuery constructor",
)

// ReorderItemsQuery asks for a past order's items as a fresh cart proposal.
type ReorderItemsQuery struct {
	orderID      kernel.UUID
	contractorID kernel.UUID
	actorRole    services.Role

	guard guard.ConstructorGuard
}

// NewReorderItemsQuery creates a reorder query for the given order and the
// contractor requesting it.
func NewReorderItemsQuery(
	orderID, contractorID kernel.UUID,
	actorRole services.Role,
) (ReorderItemsQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		contractorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return ReorderItemsQuery{}, err
	}

	return ReorderItemsQuery{
		orderID:      orderID,
		contractorID: contractorID,
		actorRole:    actorRole,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ReorderItemsQuery) Validate() error {
	return q.guard.Validate(ErrReorderItemsQueryIsNotConstructed)
}

// OrderID returns the order being reordered.
func (q ReorderItemsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ContractorID returns the requesting contractor.
func (q ReorderItemsQuery) ContractorID() kernel.UUID {
	return q.contractorID
}

// ActorRole returns the role of the caller.
func (q ReorderItemsQuery) ActorRole() services.Role {
	return q.actorRole
}

// CartItem is one proposed cart line in a reorder response.
type CartItem struct {
	ProductID      kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// ReorderItemsQueryResponse is the cart proposal. Items that are no longer
// available in the catalog are dropped and counted; the request still
// succeeds, possibly with an empty cart.
type ReorderItemsQueryResponse struct {
	OrderID          kernel.UUID
	Success          bool
	Items            []CartItem
	UnavailableCount int
}
