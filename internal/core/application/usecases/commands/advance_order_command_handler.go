package commands

import (
	"context"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// AdvanceOrderCommandHandler handles lifecycle transitions requested by
// suppliers (fulfillment progress) and either party (cancellation).
//
// The compare-and-set check runs twice: once in memory on the loaded
// aggregate, and again in the repository's guarded UPDATE so a concurrent
// writer that slipped in between still loses.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewAdvanceOrderCommandHandler creates a handler for order transitions.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	op := services.OpAdvanceOrder
	if cmd.Target() == order.Cancelled {
		op = services.OpCancelOrder
	}
	if err := h.policy.Authorize(op, cmd.ActorRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = aggregate.Advance(cmd.Target(), cmd.Expected()); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithGuard(ctx, aggregate, cmd.Expected()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.OrderAdvanced{
		OrderID:      aggregate.ID(),
		OrderNumber:  aggregate.Number(),
		ContractorID: aggregate.ContractorID(),
		SupplierID:   aggregate.SupplierID(),
		From:         from,
		To:           aggregate.Status(),
		At:           now(),
	})

	return nil
}
