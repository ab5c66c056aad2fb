package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a request to move an order along its
// fulfillment path or to cancel it. The caller states the status it last
// observed; the write is rejected as stale if the order has moved on since.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	expected  order.Status
	actorRole services.Role

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance or cancel an order.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	expected order.Status,
	actorRole services.Role,
) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatuses(target, expected),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Expected returns the status the caller last observed.
func (c AdvanceOrderCommand) Expected() order.Status {
	return c.expected
}

// ActorRole returns the role of the caller.
func (c AdvanceOrderCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setStatuses(target, expected order.Status) error {
	if err := errors.Join(target.Validate(), expected.Validate()); err != nil {
		return err
	}
	c.target = target
	c.expected = expected
	return nil
}

func (c *AdvanceOrderCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
