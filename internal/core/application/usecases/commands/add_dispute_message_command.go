package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrAddDisputeMessageCommandIsNotConstructed = errors.New(
	"AddDisputeMessageCommand must be created via NewAddDisputeMessageCommand constructor",
)

// AddDisputeMessageCommand represents a request to append a message to a
// dispute thread. Thread membership is the aggregate's check; the role only
// says whether the author writes as an administrator.
type AddDisputeMessageCommand struct { //nolint:recvcheck //using for validation
	disputeID  kernel.UUID
	authorID   kernel.UUID
	authorName string
	body       string
	actorRole  services.Role

	guard guard.ConstructorGuard
}

// NewAddDisputeMessageCommand creates a command to append a thread message.
func NewAddDisputeMessageCommand(
	disputeID kernel.UUID,
	authorID kernel.UUID,
	authorName string,
	body string,
	actorRole services.Role,
) (AddDisputeMessageCommand, error) {
	cmd := AddDisputeMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(disputeID, authorID),
		cmd.setAuthorName(authorName),
		cmd.setBody(body),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AddDisputeMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddDisputeMessageCommand) Validate() error {
	return c.guard.Validate(ErrAddDisputeMessageCommandIsNotConstructed)
}

// DisputeID returns the target dispute.
func (c AddDisputeMessageCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// AuthorID returns the message author.
func (c AddDisputeMessageCommand) AuthorID() kernel.UUID {
	return c.authorID
}

// AuthorName returns the author's display name.
func (c AddDisputeMessageCommand) AuthorName() string {
	return c.authorName
}

// Body returns the message text.
func (c AddDisputeMessageCommand) Body() string {
	return c.body
}

// ActorRole returns the role of the caller.
func (c AddDisputeMessageCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *AddDisputeMessageCommand) setIDs(disputeID, authorID kernel.UUID) error {
	if err := errors.Join(disputeID.Validate(), authorID.Validate()); err != nil {
		return err
	}
	c.disputeID = disputeID
	c.authorID = authorID
	return nil
}

func (c *AddDisputeMessageCommand) setAuthorName(authorName string) error {
	if authorName == "" {
		return errs.NewValueIsRequiredError("authorName")
	}
	c.authorName = authorName
	return nil
}

func (c *AddDisputeMessageCommand) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	c.body = body
	return nil
}

func (c *AddDisputeMessageCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
