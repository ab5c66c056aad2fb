// Package notification models user-facing messages produced from domain
// events. Delivery to the outbound sink is at-least-once: the delivered flag
// and attempt counter let the retry job pick up what the first emit missed,
// with the notification id as the idempotency key.
package notification

import (
	"errors"
	"fmt"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Kind tags a notification with the event family it came from.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrderAdvanced
	KindDeliveryCompleted
	KindDisputeOpened
	KindDisputeMessage
	KindDisputeResolved
	KindReviewSubmitted
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:           "Unknown",
		KindOrderAdvanced:     "OrderAdvanced",
		KindDeliveryCompleted: "DeliveryCompleted",
		KindDisputeOpened:     "DisputeOpened",
		KindDisputeMessage:    "DisputeMessage",
		KindDisputeResolved:   "DisputeResolved",
		KindReviewSubmitted:   "ReviewSubmitted",
	}
}

// Validate checks the kind value when rehydrating from storage.
func (k Kind) Validate() error {
	if k == KindUnknown {
		return fmt.Errorf("%d is not a valid notification kind", k)
	}
	if _, ok := getKindStrings()[k]; !ok {
		return fmt.Errorf("%d is not a valid notification kind", k)
	}
	return nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Notification is a single message addressed to one recipient.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	kind        Kind
	subjectID   kernel.UUID
	message     string
	createdAt   time.Time

	delivered   bool
	deliveredAt *time.Time
	attempts    int
	readAt      *time.Time

	isConstructed bool
}

// NewNotification creates an undelivered, unread notification. subjectID
// points at the aggregate the event concerns (order or dispute).
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	kind Kind,
	subjectID kernel.UUID,
	message string,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		isConstructed: true,
	}

	if err := errors.Join(
		n.setIDs(id, recipientID, subjectID),
		n.setKind(kind),
		n.setMessage(message),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	kind Kind,
	subjectID kernel.UUID,
	message string,
	createdAt time.Time,
	delivered bool,
	deliveredAt *time.Time,
	attempts int,
	readAt *time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientID, kind, subjectID, message, createdAt)
	if err != nil {
		return nil, err
	}

	if attempts < 0 {
		return nil, errs.NewValueIsInvalidError("attempts")
	}
	if delivered && deliveredAt == nil {
		return nil, errs.NewValueIsRequiredError("deliveredAt")
	}

	n.delivered = delivered
	n.deliveredAt = deliveredAt
	n.attempts = attempts
	n.readAt = readAt
	return n, nil
}

// Validate ensures the Notification was created via a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}

	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the addressee.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Kind returns the event family tag.
func (n *Notification) Kind() Kind {
	return n.kind
}

// SubjectID returns the aggregate the notification concerns.
func (n *Notification) SubjectID() kernel.UUID {
	return n.subjectID
}

// Message returns the display text.
func (n *Notification) Message() string {
	return n.message
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// IsDelivered reports whether the sink has accepted the notification.
func (n *Notification) IsDelivered() bool {
	return n.delivered
}

// DeliveredAt returns the sink-accept timestamp, or nil.
func (n *Notification) DeliveredAt() *time.Time {
	return n.deliveredAt
}

// Attempts returns how many sink emissions have been tried.
func (n *Notification) Attempts() int {
	return n.attempts
}

// IsRead reports whether the recipient has seen the notification.
func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

// ReadAt returns when the recipient marked it read, or nil.
func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

// RegisterAttempt counts a sink emission try. Called before the emit so a
// crash mid-send still leaves a trace.
func (n *Notification) RegisterAttempt() {
	n.attempts++
}

// MarkDelivered records sink acceptance. Idempotent; the first timestamp wins
// so redeliveries do not rewrite history.
func (n *Notification) MarkDelivered(at time.Time) {
	if n.delivered {
		return
	}
	n.delivered = true
	n.deliveredAt = &at
}

// MarkRead records that the recipient opened the notification. Idempotent.
func (n *Notification) MarkRead(at time.Time) {
	if n.readAt != nil {
		return
	}
	n.readAt = &at
}

func (n *Notification) setIDs(id, recipientID, subjectID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		recipientID.Validate(),
		subjectID.Validate(),
	); err != nil {
		return err
	}

	n.id = id
	n.recipientID = recipientID
	n.subjectID = subjectID
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	n.createdAt = createdAt
	return nil
}
