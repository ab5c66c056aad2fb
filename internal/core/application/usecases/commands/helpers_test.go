package commands_test

import (
	"testing"
	"time"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), "Portland Cement 25kg", 10, 899)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-1001",
		kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, time.Now(),
	)
	require.NoError(t, err)

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

	if status == order.Disputed {
		require.NoError(t, o.MarkDisputed(order.New))
	}
	return o
}

func storedDispute(t *testing.T, o *order.Order) *dispute.Dispute {
	t.Helper()

	opening, err := dispute.NewMessage(
		kernel.NewUUID(), o.ContractorID(), "Ivan Builder", "Half the pallet arrived broken", time.Now(),
	)
	require.NoError(t, err)

	d, err := dispute.NewDispute(
		kernel.NewUUID(), o.ID(),
		o.ContractorID(), o.SupplierID(),
		"damaged goods", opening, time.Now(),
	)
	require.NoError(t, err)
	return d
}
