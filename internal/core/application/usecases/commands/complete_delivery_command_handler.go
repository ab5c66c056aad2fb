package commands

import (
	"context"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// CompleteDeliveryCommandHandler confirms handover: the status flip to
// Completed and the proof-of-delivery attachment happen in one guarded write.
// A contractor dispute racing this command makes the guarded UPDATE miss and
// the driver gets a stale-state error with nothing persisted.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpCompleteDelivery, cmd.ActorRole()); err != nil {
		return err
	}

	pod, err := order.NewProofOfDelivery(cmd.ImageRef(), cmd.SignatureRef(), now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	from := aggregate.Status()

	if err = aggregate.CompleteDelivery(pod, cmd.Expected()); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithGuard(ctx, aggregate, cmd.Expected()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	completedAt := now()
	evts := []events.DomainEvent{
		events.OrderAdvanced{
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.Number(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			From:         from,
			To:           aggregate.Status(),
			At:           completedAt,
		},
	}
	if delivery := aggregate.Delivery(); delivery != nil {
		evts = append(evts, events.DeliveryCompleted{
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.Number(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			DriverID:     delivery.DriverID(),
			At:           completedAt,
		})
	}
	h.publisher.Publish(ctx, evts...)

	return nil
}
