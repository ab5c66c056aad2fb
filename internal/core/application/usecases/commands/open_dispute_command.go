package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrOpenDisputeCommandIsNotConstructed = errors.New(
	"OpenDisputeCommand must be created via NewOpenDisputeCommand constructor",
)

// OpenDisputeCommand represents a request by one order party to contest the
// order. The opening message seeds the dispute thread.
type OpenDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID    kernel.UUID
	orderID      kernel.UUID
	raisedBy     kernel.UUID
	raisedByName string
	reason       string
	message      string
	expected     order.Status
	actorRole    services.Role

	guard guard.ConstructorGuard
}

// NewOpenDisputeCommand creates a command to open a dispute.
func NewOpenDisputeCommand(
	disputeID kernel.UUID,
	orderID kernel.UUID,
	raisedBy kernel.UUID,
	raisedByName string,
	reason string,
	message string,
	expected order.Status,
	actorRole services.Role,
) (OpenDisputeCommand, error) {
	cmd := OpenDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(disputeID, orderID, raisedBy),
		cmd.setRaisedByName(raisedByName),
		cmd.setReason(reason),
		cmd.setMessage(message),
		cmd.setExpected(expected),
		cmd.setActorRole(actorRole),
	); err != nil {
		return OpenDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenDisputeCommand) Validate() error {
	return c.guard.Validate(ErrOpenDisputeCommandIsNotConstructed)
}

// DisputeID returns the identifier for the new dispute.
func (c OpenDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// OrderID returns the contested order.
func (c OpenDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RaisedBy returns the identifier of the party raising the dispute.
func (c OpenDisputeCommand) RaisedBy() kernel.UUID {
	return c.raisedBy
}

// RaisedByName returns the raising party's display name.
func (c OpenDisputeCommand) RaisedByName() string {
	return c.raisedByName
}

// Reason returns the short dispute description.
func (c OpenDisputeCommand) Reason() string {
	return c.reason
}

// Message returns the opening thread message body.
func (c OpenDisputeCommand) Message() string {
	return c.message
}

// Expected returns the order status the caller last observed.
func (c OpenDisputeCommand) Expected() order.Status {
	return c.expected
}

// ActorRole returns the role of the caller.
func (c OpenDisputeCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *OpenDisputeCommand) setIDs(disputeID, orderID, raisedBy kernel.UUID) error {
	if err := errors.Join(
		disputeID.Validate(),
		orderID.Validate(),
		raisedBy.Validate(),
	); err != nil {
		return err
	}
	c.disputeID = disputeID
	c.orderID = orderID
	c.raisedBy = raisedBy
	return nil
}

func (c *OpenDisputeCommand) setRaisedByName(raisedByName string) error {
	if raisedByName == "" {
		return errs.NewValueIsRequiredError("raisedByName")
	}
	c.raisedByName = raisedByName
	return nil
}

func (c *OpenDisputeCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *OpenDisputeCommand) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	c.message = message
	return nil
}

func (c *OpenDisputeCommand) setExpected(expected order.Status) error {
	if err := expected.Validate(); err != nil {
		return err
	}
	c.expected = expected
	return nil
}

func (c *OpenDisputeCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
