package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrAcceptSuggestionCommandIsNotConstructed = errors.New(
	"AcceptSuggestionCommand must be created via NewAcceptSuggestionCommand constructor",
)

// AcceptSuggestionCommand represents a party's request to pull a mediation
// suggestion from the advisory backend into the dispute thread.
type AcceptSuggestionCommand struct { //nolint:recvcheck //using for validation
	disputeID kernel.UUID
	actorRole services.Role

	guard guard.ConstructorGuard
}

// NewAcceptSuggestionCommand creates a command to accept a mediation suggestion.
func NewAcceptSuggestionCommand(
	disputeID kernel.UUID,
	actorRole services.Role,
) (AcceptSuggestionCommand, error) {
	cmd := AcceptSuggestionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisputeID(disputeID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AcceptSuggestionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptSuggestionCommand) Validate() error {
	return c.guard.Validate(ErrAcceptSuggestionCommandIsNotConstructed)
}

// DisputeID returns the target dispute.
func (c AcceptSuggestionCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// ActorRole returns the role of the caller.
func (c AcceptSuggestionCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *AcceptSuggestionCommand) setDisputeID(disputeID kernel.UUID) error {
	if err := disputeID.Validate(); err != nil {
		return err
	}
	c.disputeID = disputeID
	return nil
}

func (c *AcceptSuggestionCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
