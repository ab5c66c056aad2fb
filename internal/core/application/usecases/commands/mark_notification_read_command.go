package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a recipient opening a notification.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	recipientID    kernel.UUID
	actorRole      services.Role

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command to mark a notification read.
func NewMarkNotificationReadCommand(
	notificationID kernel.UUID,
	recipientID kernel.UUID,
	actorRole services.Role,
) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(notificationID, recipientID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the notification being opened.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// RecipientID returns the caller claiming the notification.
func (c MarkNotificationReadCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

// ActorRole returns the role of the caller.
func (c MarkNotificationReadCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *MarkNotificationReadCommand) setIDs(notificationID, recipientID kernel.UUID) error {
	if err := errors.Join(notificationID.Validate(), recipientID.Validate()); err != nil {
		return err
	}
	c.notificationID = notificationID
	c.recipientID = recipientID
	return nil
}

func (c *MarkNotificationReadCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
