package ports

import (
	"context"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
)

// AdvisoryService is an external content-generation backend. The module does
// not care how answers are produced; callers bound each call with a context
// deadline and treat failures as ordinary errors that leave no state behind.
type AdvisoryService interface {
	// SuggestResolution produces a neutral settlement suggestion for an open
	// dispute thread.
	SuggestResolution(ctx context.Context, d *dispute.Dispute) (string, error)

	// AnswerDeliveryQuestion answers a free-form question about an active
	// delivery using the order and the current projection as context.
	AnswerDeliveryQuestion(
		ctx context.Context,
		question string,
		aggregate *order.Order,
		projection services.DeliveryProjection,
	) (string, error)
}
