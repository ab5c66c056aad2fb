package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand represents an administrator's final decision on a
// dispute, including what happens to the underlying order.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID kernel.UUID
	adminID   kernel.UUID
	outcome   dispute.Outcome
	actorRole services.Role

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command to resolve a dispute.
func NewResolveDisputeCommand(
	disputeID kernel.UUID,
	adminID kernel.UUID,
	outcome dispute.Outcome,
	actorRole services.Role,
) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(disputeID, adminID),
		cmd.setOutcome(outcome),
		cmd.setActorRole(actorRole),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// DisputeID returns the dispute being closed.
func (c ResolveDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// AdminID returns the resolving administrator.
func (c ResolveDisputeCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Outcome returns the decision for the underlying order.
func (c ResolveDisputeCommand) Outcome() dispute.Outcome {
	return c.outcome
}

// ActorRole returns the role of the caller.
func (c ResolveDisputeCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *ResolveDisputeCommand) setIDs(disputeID, adminID kernel.UUID) error {
	if err := errors.Join(disputeID.Validate(), adminID.Validate()); err != nil {
		return err
	}
	c.disputeID = disputeID
	c.adminID = adminID
	return nil
}

func (c *ResolveDisputeCommand) setOutcome(outcome dispute.Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	c.outcome = outcome
	return nil
}

func (c *ResolveDisputeCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
