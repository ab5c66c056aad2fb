package commands

import (
	"context"

	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
)

// AssignDeliveryCommandHandler attaches a delivery leg to an order in
// preparation. The ETA is never stored; it is derived from the assignment
// moment and the planned duration whenever someone asks.
type AssignDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the assignment command.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpAssignDelivery, cmd.ActorRole()); err != nil {
		return err
	}

	details, err := order.NewDeliveryDetails(
		cmd.DriverID(), cmd.DriverName(), cmd.VehicleRef(),
		cmd.StartCoords(), cmd.DestCoords(),
		cmd.PlannedDuration(), now(),
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDelivery(details); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
