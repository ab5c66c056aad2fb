package commands

import (
	"context"

	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders always start in the New status with the total computed from the
// line items.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the order creation command inside a transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpCreateOrder, cmd.ActorRole()); err != nil {
		return err
	}

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, err := order.NewLineItem(input.ProductID, input.Name, input.Quantity, input.UnitPriceCents)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.Number(),
		cmd.ContractorID(), cmd.SupplierID(),
		items, now(),
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
