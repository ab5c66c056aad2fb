package commands

import (
	"context"
	"fmt"

	"supplyflow/internal/core/domain/services"
)

// MarkNotificationReadCommandHandler flips a notification's read flag. Only
// the addressee may do so; the operation is idempotent.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	policy     services.AccessPolicy
}

// NewMarkNotificationReadCommandHandler creates a handler for read receipts.
func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	policy services.AccessPolicy,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the mark-read command.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpMarkNotificationRead, cmd.ActorRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	aggregate, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !aggregate.RecipientID().IsEqual(cmd.RecipientID()) {
		return fmt.Errorf("%w: notification belongs to another recipient", services.ErrAccessDenied)
	}

	aggregate.MarkRead(now())

	if err = notificationRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
