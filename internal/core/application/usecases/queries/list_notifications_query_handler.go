package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"
	"supplyflow/internal/core/domain/services"
)

// ListNotificationsQueryHandler reads the notification feed straight off the
// notifications table.
type ListNotificationsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListNotificationsQueryHandler creates a handler for notification feeds.
func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{
		db:     db,
		policy: services.NewAccessPolicy(),
	}
}

// Handle executes the query. An empty feed is a valid answer, not an error.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	if err := h.policy.Authorize(services.OpListNotifications, query.ActorRole()); err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			subject_id,
			message,
			created_at,
			read_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC
	`, query.RecipientID().Bytes()).Rows()
	if err != nil {
		return ListNotificationsQueryResponse{}, err
	}
	defer rows.Close()

	response := ListNotificationsQueryResponse{
		Notifications: []NotificationView{},
	}

	for rows.Next() {
		var (
			id        uuid.UUID
			kind      int
			subjectID uuid.UUID
			message   string
			createdAt sql.NullTime
			readAt    sql.NullTime
		)
		if err := rows.Scan(&id, &kind, &subjectID, &message, &createdAt, &readAt); err != nil {
			return ListNotificationsQueryResponse{}, err
		}

		notificationID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return ListNotificationsQueryResponse{}, err
		}
		subject, err := kernel.UUIDFromBytes(subjectID[:])
		if err != nil {
			return ListNotificationsQueryResponse{}, err
		}

		response.Notifications = append(response.Notifications, NotificationView{
			ID:        notificationID,
			Kind:      notification.Kind(kind),
			SubjectID: subject,
			Message:   message,
			CreatedAt: createdAt.Time,
			IsRead:    readAt.Valid,
		})
	}
	if err := rows.Err(); err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	return response, nil
}
