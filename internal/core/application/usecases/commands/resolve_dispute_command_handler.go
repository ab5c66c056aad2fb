package commands

import (
	"context"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// ResolveDisputeCommandHandler closes a dispute and applies the outcome to
// the underlying order in the same transaction, so the dispute record and the
// order status can never disagree about how the disagreement ended.
type ResolveDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolution.
func NewResolveDisputeCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the resolution command.
func (h ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpResolveDispute, cmd.ActorRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	disputeRepo := uow.DisputeRepository()
	disputed, err := disputeRepo.Get(ctx, cmd.DisputeID())
	if err != nil {
		return err
	}

	resolvedAt := now()
	if err = disputed.Resolve(cmd.AdminID(), cmd.Outcome(), resolvedAt); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, disputed.OrderID())
	if err != nil {
		return err
	}
	from := aggregate.Status()

	if err = aggregate.ApplyResolution(resolutionTarget(cmd.Outcome())); err != nil {
		return err
	}

	if err = disputeRepo.Update(ctx, disputed); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithGuard(ctx, aggregate, order.Disputed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	evts := []events.DomainEvent{
		events.DisputeResolved{
			DisputeID:    disputed.ID(),
			OrderID:      aggregate.ID(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			ResolvedBy:   cmd.AdminID(),
			Outcome:      cmd.Outcome(),
			At:           resolvedAt,
		},
	}
	if aggregate.Status() != from {
		evts = append(evts, events.OrderAdvanced{
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.Number(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			From:         from,
			To:           aggregate.Status(),
			At:           resolvedAt,
		})
	}
	h.publisher.Publish(ctx, evts...)

	return nil
}

// resolutionTarget maps the administrator's decision onto the order status it
// implies. RemainDisputed leaves the order where it is.
func resolutionTarget(outcome dispute.Outcome) order.Status {
	switch outcome {
	case dispute.OutcomeCancelOrder:
		return order.Cancelled
	case dispute.OutcomeCompleteOrder:
		return order.Completed
	default:
		return order.Disputed
	}
}
