package order_test

import (
	"testing"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.LineItem {
	t.Helper()

	cement, err := order.NewLineItem(kernel.NewUUID(), "Portland Cement 25kg", 10, 899)
	require.NoError(t, err)
	bricks, err := order.NewLineItem(kernel.NewUUID(), "Red Brick Pallet", 2, 24900)
	require.NoError(t, err)

	return []order.LineItem{cement, bricks}
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-1001",
		kernel.NewUUID(), kernel.NewUUID(),
		testItems(t), time.Now(),
	)
	require.NoError(t, err)
	return o
}

func testOrderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o := testOrder(t)
	path := map[order.Status][]order.Status{
		order.New:            {},
		order.Processing:     {order.Processing},
		order.ReadyForPickup: {order.Processing, order.ReadyForPickup},
		order.OutForDelivery: {order.Processing, order.ReadyForPickup, order.OutForDelivery},
	}[status]

	current := order.New
	for _, next := range path {
		require.NoError(t, o.Advance(next, current))
		current = next
	}
	return o
}

func testProof(t *testing.T) order.ProofOfDelivery {
	t.Helper()

	pod, err := order.NewProofOfDelivery("img://pod/1.jpg", "sig://pod/1.svg", time.Now())
	require.NoError(t, err)
	return pod
}

func testDelivery(t *testing.T) order.DeliveryDetails {
	t.Helper()

	start, err := kernel.NewGeoPoint(55.751244, 37.618423)
	require.NoError(t, err)
	dest, err := kernel.NewGeoPoint(55.802345, 37.587654)
	require.NoError(t, err)

	details, err := order.NewDeliveryDetails(
		kernel.NewUUID(), "Pavel D.", "AB-123-CD",
		start, dest, 15*time.Minute, time.Now(),
	)
	require.NoError(t, err)
	return details
}

func TestNewOrder(t *testing.T) {
	t.Run("starts in New with computed total", func(t *testing.T) {
		o := testOrder(t)

		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, int64(10*899+2*24900), o.TotalCents())
		assert.Len(t, o.Items(), 2)
		assert.Nil(t, o.Delivery())
		assert.Nil(t, o.ProofOfDelivery())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1002",
			kernel.NewUUID(), kernel.NewUUID(),
			nil, time.Now(),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("requires an order number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "",
			kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), time.Now(),
		)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, testOrder(t).Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("full fulfillment path", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.Advance(order.Processing, order.New))
		require.NoError(t, o.Advance(order.ReadyForPickup, order.Processing))
		require.NoError(t, o.Advance(order.OutForDelivery, order.ReadyForPickup))
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("stale expectation is rejected and status unchanged", func(t *testing.T) {
		o := testOrderInStatus(t, order.Processing)

		err := o.Advance(order.Processing, order.New)
		require.ErrorIs(t, err, order.ErrStaleState)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("skipping states is rejected and status unchanged", func(t *testing.T) {
		o := testOrder(t)

		err := o.Advance(order.Completed, order.New)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})

	t.Run("cancellation from the middle of the path", func(t *testing.T) {
		o := testOrderInStatus(t, order.ReadyForPickup)

		require.NoError(t, o.Advance(order.Cancelled, order.ReadyForPickup))
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_AssignDelivery(t *testing.T) {
	t.Run("allowed in Processing and ReadyForPickup", func(t *testing.T) {
		for _, status := range []order.Status{order.Processing, order.ReadyForPickup} {
			o := testOrderInStatus(t, status)

			require.NoError(t, o.AssignDelivery(testDelivery(t)))
			require.NotNil(t, o.Delivery())
			assert.Equal(t, "AB-123-CD", o.Delivery().VehicleRef())
		}
	})

	t.Run("rejected in New", func(t *testing.T) {
		o := testOrder(t)

		err := o.AssignDelivery(testDelivery(t))
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Delivery())
	})

	t.Run("rejects unconstructed details", func(t *testing.T) {
		o := testOrderInStatus(t, order.Processing)

		err := o.AssignDelivery(order.DeliveryDetails{})
		require.Error(t, err)
	})
}

func TestOrder_CompleteDelivery(t *testing.T) {
	t.Run("succeeds from OutForDelivery with complete artifact", func(t *testing.T) {
		o := testOrderInStatus(t, order.OutForDelivery)

		require.NoError(t, o.CompleteDelivery(testProof(t), order.OutForDelivery))
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.ProofOfDelivery())
		assert.Equal(t, "img://pod/1.jpg", o.ProofOfDelivery().ImageRef())
	})

	t.Run("incomplete artifact fails with missing artifact, status unchanged", func(t *testing.T) {
		o := testOrderInStatus(t, order.OutForDelivery)

		missingSig, err := order.NewProofOfDelivery("img://pod/2.jpg", "", time.Now())
		require.NoError(t, err)

		err = o.CompleteDelivery(missingSig, order.OutForDelivery)
		require.ErrorIs(t, err, order.ErrMissingArtifact)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Nil(t, o.ProofOfDelivery())
	})

	t.Run("stale expectation fails, artifact not attached", func(t *testing.T) {
		// Scenario: contractor disputes while the driver still believes the
		// order is out for delivery. Exactly one write wins.
		o := testOrderInStatus(t, order.OutForDelivery)
		require.NoError(t, o.MarkDisputed(order.OutForDelivery))

		err := o.CompleteDelivery(testProof(t), order.OutForDelivery)
		require.ErrorIs(t, err, order.ErrStaleState)
		assert.Equal(t, order.Disputed, o.Status())
		assert.Nil(t, o.ProofOfDelivery())
	})

	t.Run("rejected from non-delivery statuses", func(t *testing.T) {
		o := testOrder(t)

		err := o.CompleteDelivery(testProof(t), order.New)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})
}

func TestOrder_MarkDisputed(t *testing.T) {
	t.Run("any non-terminal order can be disputed", func(t *testing.T) {
		o := testOrderInStatus(t, order.OutForDelivery)

		require.NoError(t, o.MarkDisputed(order.OutForDelivery))
		assert.Equal(t, order.Disputed, o.Status())
	})

	t.Run("double dispute is rejected", func(t *testing.T) {
		o := testOrderInStatus(t, order.Processing)
		require.NoError(t, o.MarkDisputed(order.Processing))

		err := o.MarkDisputed(order.Disputed)
		require.ErrorIs(t, err, order.ErrDuplicateDispute)
	})

	t.Run("completed order cannot be disputed", func(t *testing.T) {
		o := testOrderInStatus(t, order.OutForDelivery)
		require.NoError(t, o.CompleteDelivery(testProof(t), order.OutForDelivery))

		err := o.MarkDisputed(order.Completed)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_ApplyResolution(t *testing.T) {
	disputed := func() *order.Order {
		o := testOrderInStatus(t, order.Processing)
		require.NoError(t, o.MarkDisputed(order.Processing))
		return o
	}

	t.Run("cancel outcome", func(t *testing.T) {
		o := disputed()
		require.NoError(t, o.ApplyResolution(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("complete outcome", func(t *testing.T) {
		o := disputed()
		require.NoError(t, o.ApplyResolution(order.Completed))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("remain disputed outcome", func(t *testing.T) {
		o := disputed()
		require.NoError(t, o.ApplyResolution(order.Disputed))
		assert.Equal(t, order.Disputed, o.Status())
	})

	t.Run("only disputed orders accept resolutions", func(t *testing.T) {
		o := testOrder(t)
		require.ErrorIs(t, o.ApplyResolution(order.Cancelled), order.ErrInvalidTransition)
	})

	t.Run("fulfillment states are not resolution targets", func(t *testing.T) {
		o := disputed()
		require.ErrorIs(t, o.ApplyResolution(order.Processing), order.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trip preserves fields", func(t *testing.T) {
		id := kernel.NewUUID()
		contractor := kernel.NewUUID()
		supplier := kernel.NewUUID()
		items := testItems(t)
		createdAt := time.Now().Add(-time.Hour)
		details := testDelivery(t)

		o, err := order.RestoreOrder(
			id, "ORD-2002", contractor, supplier, items,
			order.OutForDelivery, createdAt, &details, nil,
		)
		require.NoError(t, err)

		assert.Equal(t, id, o.ID())
		assert.Equal(t, "ORD-2002", o.Number())
		assert.Equal(t, order.OutForDelivery, o.Status())
		require.NotNil(t, o.Delivery())
		assert.Equal(t, details.DriverID(), o.Delivery().DriverID())
	})

	t.Run("rejects invalid stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2003", kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), order.Unknown, time.Now(), nil, nil,
		)
		require.Error(t, err)
	})

	t.Run("rejects proof of delivery on an active order", func(t *testing.T) {
		pod := testProof(t)
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2004", kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), order.OutForDelivery, time.Now(), nil, &pod,
		)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}
