package notification_test

import (
	"testing"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification(t *testing.T) *notification.Notification {
	t.Helper()

	n, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(),
		notification.KindOrderAdvanced, kernel.NewUUID(),
		"Order ORD-1001 is now Processing", time.Now(),
	)
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	t.Run("starts undelivered and unread", func(t *testing.T) {
		n := testNotification(t)

		assert.False(t, n.IsDelivered())
		assert.False(t, n.IsRead())
		assert.Zero(t, n.Attempts())
		assert.Nil(t, n.DeliveredAt())
	})

	t.Run("requires a message", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.KindDisputeOpened, kernel.NewUUID(),
			"", time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("requires a valid kind", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.KindUnknown, kernel.NewUUID(),
			"text", time.Now(),
		)
		require.Error(t, err)
	})
}

func TestNotification_Delivery(t *testing.T) {
	t.Run("attempt then deliver", func(t *testing.T) {
		n := testNotification(t)
		at := time.Now()

		n.RegisterAttempt()
		n.MarkDelivered(at)

		assert.Equal(t, 1, n.Attempts())
		assert.True(t, n.IsDelivered())
		require.NotNil(t, n.DeliveredAt())
		assert.Equal(t, at, *n.DeliveredAt())
	})

	t.Run("redelivery keeps the first timestamp", func(t *testing.T) {
		n := testNotification(t)
		first := time.Now()

		n.RegisterAttempt()
		n.MarkDelivered(first)
		n.RegisterAttempt()
		n.MarkDelivered(first.Add(time.Minute))

		assert.Equal(t, 2, n.Attempts())
		assert.Equal(t, first, *n.DeliveredAt())
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n := testNotification(t)
	first := time.Now()

	n.MarkRead(first)
	n.MarkRead(first.Add(time.Hour))

	assert.True(t, n.IsRead())
	require.NotNil(t, n.ReadAt())
	assert.Equal(t, first, *n.ReadAt())
}

func TestRestoreNotification(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		deliveredAt := time.Now()
		n, err := notification.RestoreNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.KindDisputeResolved, kernel.NewUUID(),
			"Dispute resolved", time.Now().Add(-time.Hour),
			true, &deliveredAt, 3, nil,
		)
		require.NoError(t, err)

		assert.True(t, n.IsDelivered())
		assert.Equal(t, 3, n.Attempts())
		assert.False(t, n.IsRead())
	})

	t.Run("delivered without timestamp is rejected", func(t *testing.T) {
		_, err := notification.RestoreNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			notification.KindDisputeResolved, kernel.NewUUID(),
			"Dispute resolved", time.Now(),
			true, nil, 1, nil,
		)
		require.Error(t, err)
	})
}
