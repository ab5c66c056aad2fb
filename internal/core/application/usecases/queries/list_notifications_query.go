package queries

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery requests a recipient's notification feed.
type ListNotificationsQuery struct {
	recipientID kernel.UUID
	actorRole   services.Role

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates a notification feed query.
func NewListNotificationsQuery(
	recipientID kernel.UUID,
	actorRole services.Role,
) (ListNotificationsQuery, error) {
	if err := errors.Join(recipientID.Validate(), actorRole.Validate()); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		recipientID: recipientID,
		actorRole:   actorRole,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// RecipientID returns the feed owner.
func (q ListNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// ActorRole returns the role of the caller.
func (q ListNotificationsQuery) ActorRole() services.Role {
	return q.actorRole
}

// NotificationView is one feed entry.
type NotificationView struct {
	ID        kernel.UUID
	Kind      notification.Kind
	SubjectID kernel.UUID
	Message   string
	CreatedAt time.Time
	IsRead    bool
}

// ListNotificationsQueryResponse is the recipient's feed, newest first.
type ListNotificationsQueryResponse struct {
	Notifications []NotificationView
}
