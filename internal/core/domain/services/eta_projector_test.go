package services_test

import (
	"testing"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectorDetails(t *testing.T, assignedAt time.Time, plannedDuration time.Duration) order.DeliveryDetails {
	t.Helper()

	start, err := kernel.NewGeoPoint(50.0, 30.0)
	require.NoError(t, err)
	dest, err := kernel.NewGeoPoint(51.0, 31.0)
	require.NoError(t, err)

	details, err := order.NewDeliveryDetails(
		kernel.NewUUID(), "Pavel D.", "AB-123-CD",
		start, dest, plannedDuration, assignedAt,
	)
	require.NoError(t, err)
	return details
}

func TestETAProjector_Project(t *testing.T) {
	projector := services.NewETAProjector()
	assignedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("at assignment the vehicle is at the start", func(t *testing.T) {
		details := projectorDetails(t, assignedAt, time.Hour)

		proj, err := projector.Project(details, assignedAt)
		require.NoError(t, err)

		assert.Zero(t, proj.Progress)
		assert.InDelta(t, 50.0, proj.Position.Latitude(), 1e-9)
		assert.InDelta(t, 30.0, proj.Position.Longitude(), 1e-9)
		assert.Equal(t, details.PlannedETA(), proj.ETA)
	})

	t.Run("halfway through the position is the midpoint", func(t *testing.T) {
		details := projectorDetails(t, assignedAt, time.Hour)
		now := assignedAt.Add(30 * time.Minute)

		proj, err := projector.Project(details, now)
		require.NoError(t, err)

		assert.InDelta(t, 0.5, proj.Progress, 1e-9)
		assert.InDelta(t, 50.5, proj.Position.Latitude(), 1e-9)
		assert.InDelta(t, 30.5, proj.Position.Longitude(), 1e-9)
		// Half of the remaining half hour: ETA lands 15 minutes out.
		assert.Equal(t, now.Add(15*time.Minute), proj.ETA)
	})

	t.Run("past the planned duration progress pins at one", func(t *testing.T) {
		details := projectorDetails(t, assignedAt, time.Hour)
		now := assignedAt.Add(2 * time.Hour)

		proj, err := projector.Project(details, now)
		require.NoError(t, err)

		assert.Equal(t, 1.0, proj.Progress)
		assert.InDelta(t, 51.0, proj.Position.Latitude(), 1e-9)
		assert.Equal(t, now, proj.ETA)
	})

	t.Run("before assignment progress clamps to zero", func(t *testing.T) {
		details := projectorDetails(t, assignedAt, time.Hour)

		proj, err := projector.Project(details, assignedAt.Add(-10*time.Minute))
		require.NoError(t, err)

		assert.Zero(t, proj.Progress)
	})

	t.Run("same moment yields the same snapshot", func(t *testing.T) {
		details := projectorDetails(t, assignedAt, time.Hour)
		now := assignedAt.Add(20 * time.Minute)

		first, err := projector.Project(details, now)
		require.NoError(t, err)
		second, err := projector.Project(details, now)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("unconstructed details are rejected", func(t *testing.T) {
		_, err := projector.Project(order.DeliveryDetails{}, time.Now())
		require.Error(t, err)
	})
}
