// Package kafka implements the outbound notification sink on a Kafka topic.
// Each notification becomes one message keyed by recipient, so a consumer
// partition sees a single recipient's notifications in order.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"supplyflow/internal/core/domain/model/notification"
	"supplyflow/internal/core/ports"
)

// notificationEnvelope is the wire payload. The notification id doubles as the
// consumer-side idempotency key for redeliveries.
type notificationEnvelope struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Kind        string    `json:"kind"`
	SubjectID   string    `json:"subject_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	Attempt     int       `json:"attempt"`
}

// NotificationSink publishes notifications to a Kafka topic via kafka-go.
type NotificationSink struct {
	writer *kafka.Writer
}

var _ ports.NotificationSink = (*NotificationSink)(nil)

// NewNotificationSink creates a sink writing to the given brokers and topic.
// Writes are synchronous and require acks from all replicas; Emit reports the
// broker's verdict, which the dispatcher's at-least-once bookkeeping relies on.
func NewNotificationSink(brokers []string, topic string) *NotificationSink {
	return &NotificationSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

// Emit publishes one notification.
func (s *NotificationSink) Emit(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(notificationEnvelope{
		ID:          n.ID().String(),
		RecipientID: n.RecipientID().String(),
		Kind:        n.Kind().String(),
		SubjectID:   n.SubjectID().String(),
		Message:     n.Message(),
		CreatedAt:   n.CreatedAt(),
		Attempt:     n.Attempts(),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.RecipientID().String()),
		Value: payload,
	})
}

// Close releases the underlying writer.
func (s *NotificationSink) Close() error {
	return s.writer.Close()
}
