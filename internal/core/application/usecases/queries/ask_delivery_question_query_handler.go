package queries

import (
	"context"
	"time"

	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

const advisoryTimeout = 10 * time.Second

// AskDeliveryQuestionQueryHandler answers delivery questions through the
// advisory backend, grounding each answer in the order aggregate and the
// current projection. The advisory call is bounded by advisoryTimeout.
type AskDeliveryQuestionQueryHandler struct {
	orders    ports.OrderRepository
	advisory  ports.AdvisoryService
	projector services.ETAProjector
	policy    services.AccessPolicy
}

// NewAskDeliveryQuestionQueryHandler creates a handler for delivery questions.
func NewAskDeliveryQuestionQueryHandler(
	orders ports.OrderRepository,
	advisory ports.AdvisoryService,
) AskDeliveryQuestionQueryHandler {
	return AskDeliveryQuestionQueryHandler{
		orders:    orders,
		advisory:  advisory,
		projector: services.NewETAProjector(),
		policy:    services.NewAccessPolicy(),
	}
}

// Handle executes the query. Orders without an assigned delivery cannot be
// asked about; advisory failures surface as plain errors with no state left
// behind.
func (h AskDeliveryQuestionQueryHandler) Handle(
	ctx context.Context,
	query AskDeliveryQuestionQuery,
) (AskDeliveryQuestionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AskDeliveryQuestionQueryResponse{}, err
	}

	if err := h.policy.Authorize(services.OpAskDeliveryQuestion, query.ActorRole()); err != nil {
		return AskDeliveryQuestionQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return AskDeliveryQuestionQueryResponse{}, err
	}
	if aggregate.Delivery() == nil {
		return AskDeliveryQuestionQueryResponse{}, order.ErrDeliveryNotAssigned
	}

	projection, err := h.projector.Project(*aggregate.Delivery(), time.Now().UTC())
	if err != nil {
		return AskDeliveryQuestionQueryResponse{}, err
	}

	advisoryCtx, cancel := context.WithTimeout(ctx, advisoryTimeout)
	defer cancel()

	answer, err := h.advisory.AnswerDeliveryQuestion(advisoryCtx, query.Question(), aggregate, projection)
	if err != nil {
		return AskDeliveryQuestionQueryResponse{}, err
	}

	return AskDeliveryQuestionQueryResponse{Answer: answer}, nil
}
