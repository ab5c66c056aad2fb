package queries

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/guard"
)

var ErrCanReviewQueryIsNotConstructed = errors.New(
	"CanReviewQuery must be created via NewCanReviewQuery constructor",
)

// CanReviewQuery asks whether the contractor may leave a review for an order.
type CanReviewQuery struct {
	orderID      kernel.UUID
	contractorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCanReviewQuery creates a review eligibility query.
func NewCanReviewQuery(orderID, contractorID kernel.UUID) (CanReviewQuery, error) {
	if err := errors.Join(orderID.Validate(), contractorID.Validate()); err != nil {
		return CanReviewQuery{}, err
	}

	return CanReviewQuery{
		orderID:      orderID,
		contractorID: contractorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CanReviewQuery) Validate() error {
	return q.guard.Validate(ErrCanReviewQueryIsNotConstructed)
}

// OrderID returns the order to review.
func (q CanReviewQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ContractorID returns the would-be reviewer.
func (q CanReviewQuery) ContractorID() kernel.UUID {
	return q.contractorID
}

// CanReviewQueryResponse reports eligibility; Reason is empty when Allowed.
type CanReviewQueryResponse struct {
	Allowed bool
	Reason  string
}
