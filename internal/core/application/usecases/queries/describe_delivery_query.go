// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the aggregates and unit of work: they read with raw
// SQL over the gorm connection, or compose repositories and domain services
// when the answer needs domain logic.
package queries

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/guard"
)

var ErrDescribeDeliveryQueryIsNotConstructed = errors.New(
	"DescribeDeliveryQuery must be created via NewDescribeDeliveryQuery constructor",
)

// DescribeDeliveryQuery requests a live snapshot of an order's delivery leg.
type DescribeDeliveryQuery struct {
	orderID   kernel.UUID
	actorRole services.Role

	guard guard.ConstructorGuard
}

// NewDescribeDeliveryQuery creates a query for a delivery snapshot.
func NewDescribeDeliveryQuery(
	orderID kernel.UUID,
	actorRole services.Role,
) (DescribeDeliveryQuery, error) {
	if err := errors.Join(orderID.Validate(), actorRole.Validate()); err != nil {
		return DescribeDeliveryQuery{}, err
	}

	return DescribeDeliveryQuery{
		orderID:   orderID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DescribeDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrDescribeDeliveryQueryIsNotConstructed)
}

// OrderID returns the order whose delivery is described.
func (q DescribeDeliveryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorRole returns the role of the caller.
func (q DescribeDeliveryQuery) ActorRole() services.Role {
	return q.actorRole
}

// DescribeDeliveryQueryResponse is the derived snapshot. Progress, Position
// and ETA are computed at query time and never stored.
type DescribeDeliveryQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	Status      order.Status
	DriverName  string
	VehicleRef  string
	Progress    float64
	Position    kernel.GeoPoint
	ETA         time.Time
	PlannedETA  time.Time
}
