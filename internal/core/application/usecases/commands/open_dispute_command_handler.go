package commands

import (
	"context"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// OpenDisputeCommandHandler performs the atomic open-dispute pairing: the
// guarded order flip to Disputed and the dispute insert share one transaction,
// so no order is ever Disputed without a dispute record and no dispute record
// ever points at an undisputed order.
type OpenDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewOpenDisputeCommandHandler creates a handler for opening disputes.
func NewOpenDisputeCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) OpenDisputeCommandHandler {
	return OpenDisputeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the open-dispute command.
func (h OpenDisputeCommandHandler) Handle(ctx context.Context, cmd OpenDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpOpenDispute, cmd.ActorRole()); err != nil {
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

	if err = aggregate.MarkDisputed(cmd.Expected()); err != nil {
		return err
	}

	openedAt := now()
	opening, err := dispute.NewMessage(
		kernel.NewUUID(), cmd.RaisedBy(), cmd.RaisedByName(), cmd.Message(), openedAt,
	)
	if err != nil {
		return err
	}

	newDispute, err := dispute.NewDispute(
		cmd.DisputeID(), aggregate.ID(),
		aggregate.ContractorID(), aggregate.SupplierID(),
		cmd.Reason(), opening, openedAt,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.UpdateWithGuard(ctx, aggregate, cmd.Expected()); err != nil {
		return err
	}

	if err = uow.DisputeRepository().Add(ctx, newDispute); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx,
		events.DisputeOpened{
			DisputeID:    newDispute.ID(),
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.Number(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			RaisedBy:     cmd.RaisedBy(),
			Reason:       cmd.Reason(),
			At:           openedAt,
		},
		events.OrderAdvanced{
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.Number(),
			ContractorID: aggregate.ContractorID(),
			SupplierID:   aggregate.SupplierID(),
			From:         from,
			To:           aggregate.Status(),
			At:           openedAt,
		},
	)

	return nil
}
