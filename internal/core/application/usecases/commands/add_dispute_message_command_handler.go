package commands

import (
	"context"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// AddDisputeMessageCommandHandler appends a message to a dispute thread and
// lets the aggregate work out the sub-state flip.
type AddDisputeMessageCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewAddDisputeMessageCommandHandler creates a handler for thread messages.
func NewAddDisputeMessageCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) AddDisputeMessageCommandHandler {
	return AddDisputeMessageCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the message command.
func (h AddDisputeMessageCommandHandler) Handle(ctx context.Context, cmd AddDisputeMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpAddDisputeMessage, cmd.ActorRole()); err != nil {
		return err
	}

	sentAt := now()
	message, err := dispute.NewMessage(
		kernel.NewUUID(), cmd.AuthorID(), cmd.AuthorName(), cmd.Body(), sentAt,
	)
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

	disputeRepo := uow.DisputeRepository()
	aggregate, err := disputeRepo.Get(ctx, cmd.DisputeID())
	if err != nil {
		return err
	}

	isAdmin := cmd.ActorRole() == services.RoleAdmin
	if err = aggregate.AddMessage(message, isAdmin); err != nil {
		return err
	}

	if err = disputeRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DisputeMessageAdded{
		DisputeID:    aggregate.ID(),
		OrderID:      aggregate.OrderID(),
		ContractorID: aggregate.ContractorID(),
		SupplierID:   aggregate.SupplierID(),
		AuthorID:     cmd.AuthorID(),
		AuthorName:   cmd.AuthorName(),
		At:           sentAt,
	})

	return nil
}
