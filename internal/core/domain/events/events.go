// Package events defines the domain events command handlers publish after a
// successful commit. Events carry enough identity for subscribers to derive
// recipient notifications without re-reading the aggregates.
package events

import (
	"time"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
)

// DomainEvent is the marker contract for everything the publisher accepts.
type DomainEvent interface {
	// Name returns a stable dotted identifier for the event type.
	Name() string
}

// OrderAdvanced fires on every successful lifecycle transition, cancellation
// included.
type OrderAdvanced struct {
	OrderID      kernel.UUID
	OrderNumber  string
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	From         order.Status
	To           order.Status
	At           time.Time
}

func (OrderAdvanced) Name() string { return "order.advanced" }

// DeliveryCompleted fires when a driver confirms handover with a complete
// proof-of-delivery artifact.
type DeliveryCompleted struct {
	OrderID      kernel.UUID
	OrderNumber  string
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	DriverID     kernel.UUID
	At           time.Time
}

func (DeliveryCompleted) Name() string { return "delivery.completed" }

// DisputeOpened fires when the atomic open-dispute pairing commits.
type DisputeOpened struct {
	DisputeID    kernel.UUID
	OrderID      kernel.UUID
	OrderNumber  string
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	RaisedBy     kernel.UUID
	Reason       string
	At           time.Time
}

func (DisputeOpened) Name() string { return "dispute.opened" }

// DisputeMessageAdded fires for every appended thread message, mediation
// suggestions included.
type DisputeMessageAdded struct {
	DisputeID    kernel.UUID
	OrderID      kernel.UUID
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	AuthorID     kernel.UUID
	AuthorName   string
	At           time.Time
}

func (DisputeMessageAdded) Name() string { return "dispute.message_added" }

// DisputeResolved fires when an administrator closes a dispute.
type DisputeResolved struct {
	DisputeID    kernel.UUID
	OrderID      kernel.UUID
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	ResolvedBy   kernel.UUID
	Outcome      dispute.Outcome
	At           time.Time
}

func (DisputeResolved) Name() string { return "dispute.resolved" }

// ReviewSubmitted fires when a contractor rates a completed order.
type ReviewSubmitted struct {
	ReviewID     kernel.UUID
	OrderID      kernel.UUID
	ContractorID kernel.UUID
	SupplierID   kernel.UUID
	Rating       int
	At           time.Time
}

func (ReviewSubmitted) Name() string { return "review.submitted" }
