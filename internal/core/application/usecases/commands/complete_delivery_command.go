package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a driver's confirmation of physical
// handover. The artifact refs intentionally pass through unvalidated so an
// incomplete artifact fails at the transition, not at command construction.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	imageRef     string
	signatureRef string
	expected     order.Status
	actorRole    services.Role

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to confirm delivery.
func NewCompleteDeliveryCommand(
	orderID kernel.UUID,
	imageRef string,
	signatureRef string,
	expected order.Status,
	actorRole services.Role,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setExpected(expected),
		cmd.setActorRole(actorRole),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	cmd.imageRef = imageRef
	cmd.signatureRef = signatureRef

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being handed over.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ImageRef returns the handover photo reference.
func (c CompleteDeliveryCommand) ImageRef() string {
	return c.imageRef
}

// SignatureRef returns the recipient signature reference.
func (c CompleteDeliveryCommand) SignatureRef() string {
	return c.signatureRef
}

// Expected returns the status the driver last observed.
func (c CompleteDeliveryCommand) Expected() order.Status {
	return c.expected
}

// ActorRole returns the role of the caller.
func (c CompleteDeliveryCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setExpected(expected order.Status) error {
	if err := expected.Validate(); err != nil {
		return err
	}
	c.expected = expected
	return nil
}

func (c *CompleteDeliveryCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
