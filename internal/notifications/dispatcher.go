// Package notifications turns domain events into per-recipient notifications
// and pushes them out through the configured sink. Dispatch is at-least-once:
// every notification is persisted before the first delivery attempt, and a
// background job retries whatever the sink could not take.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"supplyflow/internal/core/application/usecases/commands"
	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
	"supplyflow/internal/core/ports"
)

const maxConcurrentEmits = 8

// Dispatcher implements ports.EventPublisher. Publish never returns an error
// and never blocks the caller on the sink: notifications are stored first,
// then emitted on a detached goroutine.
type Dispatcher struct {
	uowFactory commands.NotificationUoWFactory
	sink       ports.NotificationSink
	logger     *slog.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(
	uowFactory commands.NotificationUoWFactory,
	sink ports.NotificationSink,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		sink:       sink,
		logger:     logger,
	}
}

// Publish derives recipient notifications from the events, persists them in
// one transaction and hands them to the sink. Storage or sink failures are
// logged and swallowed; the retry job picks up undelivered rows later.
func (d *Dispatcher) Publish(ctx context.Context, evts ...events.DomainEvent) {
	pending := make([]*notification.Notification, 0, len(evts))
	for _, evt := range evts {
		derived, err := deriveNotifications(evt)
		if err != nil {
			d.logger.Error("derive notifications", "event", evt.Name(), "error", err)
			continue
		}
		pending = append(pending, derived...)
	}
	if len(pending) == 0 {
		return
	}

	if err := d.store(ctx, pending); err != nil {
		d.logger.Error("store notifications", "count", len(pending), "error", err)
		return
	}

	// The emit phase outlives the request that triggered the events.
	go d.emitAll(context.WithoutCancel(ctx), pending)
}

func (d *Dispatcher) store(ctx context.Context, pending []*notification.Notification) error {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	for _, n := range pending {
		if err := repo.Add(ctx, n); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (d *Dispatcher) emitAll(ctx context.Context, pending []*notification.Notification) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmits)

	for _, n := range pending {
		g.Go(func() error {
			d.Emit(ctx, n)
			return nil
		})
	}
	_ = g.Wait()
}

// Emit performs one delivery attempt and records its outcome. Shared with the
// retry job, so an attempt counts even when the sink fails.
func (d *Dispatcher) Emit(ctx context.Context, n *notification.Notification) {
	n.RegisterAttempt()

	emitErr := d.sink.Emit(ctx, n)
	if emitErr == nil {
		n.MarkDelivered(time.Now().UTC())
	} else {
		d.logger.Warn("emit notification",
			"notificationID", n.ID(), "attempts", n.Attempts(), "error", emitErr)
	}

	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		d.logger.Error("begin attempt transaction", "notificationID", n.ID(), "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Update(ctx, n); err != nil {
		d.logger.Error("record attempt", "notificationID", n.ID(), "error", err)
		return
	}
	if err := uow.Commit(ctx); err != nil {
		d.logger.Error("commit attempt", "notificationID", n.ID(), "error", err)
	}
}

// deriveNotifications maps one event to the people who should hear about it.
func deriveNotifications(evt events.DomainEvent) ([]*notification.Notification, error) {
	switch e := evt.(type) {
	case events.OrderAdvanced:
		message := fmt.Sprintf("Order %s is now %s", e.OrderNumber, e.To)
		return build(notification.KindOrderAdvanced, e.OrderID, message, e.At,
			e.ContractorID, e.SupplierID)

	case events.DeliveryCompleted:
		message := fmt.Sprintf("Order %s has been delivered", e.OrderNumber)
		return build(notification.KindDeliveryCompleted, e.OrderID, message, e.At,
			e.ContractorID, e.SupplierID)

	case events.DisputeOpened:
		message := fmt.Sprintf("A dispute was opened on order %s: %s", e.OrderNumber, e.Reason)
		return build(notification.KindDisputeOpened, e.DisputeID, message, e.At,
			counterparty(e.RaisedBy, e.ContractorID, e.SupplierID)...)

	case events.DisputeMessageAdded:
		message := fmt.Sprintf("%s replied in the dispute thread", e.AuthorName)
		return build(notification.KindDisputeMessage, e.DisputeID, message, e.At,
			counterparty(e.AuthorID, e.ContractorID, e.SupplierID)...)

	case events.DisputeResolved:
		message := fmt.Sprintf("The dispute was resolved: %s", e.Outcome)
		return build(notification.KindDisputeResolved, e.DisputeID, message, e.At,
			e.ContractorID, e.SupplierID)

	case events.ReviewSubmitted:
		message := fmt.Sprintf("You received a %d-star review", e.Rating)
		return build(notification.KindReviewSubmitted, e.OrderID, message, e.At,
			e.SupplierID)

	default:
		return nil, fmt.Errorf("unknown event %q", evt.Name())
	}
}

// counterparty returns every dispute participant except the author. Messages
// from administrators and the mediator notify both sides.
func counterparty(authorID, contractorID, supplierID kernel.UUID) []kernel.UUID {
	recipients := make([]kernel.UUID, 0, 2)
	if !authorID.IsEqual(contractorID) {
		recipients = append(recipients, contractorID)
	}
	if !authorID.IsEqual(supplierID) {
		recipients = append(recipients, supplierID)
	}
	return recipients
}

func build(
	kind notification.Kind,
	subjectID kernel.UUID,
	message string,
	at time.Time,
	recipients ...kernel.UUID,
) ([]*notification.Notification, error) {
	result := make([]*notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		n, err := notification.NewNotification(
			kernel.NewUUID(), recipientID, kind, subjectID, message, at,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
