package order

import (
	"errors"
	"fmt"
)

// Lifecycle errors. Every guarded transition reports exactly one of these so
// callers can branch on the failure kind with errors.Is.
var (
	// ErrInvalidTransition is returned when the requested edge is not in the
	// allowed transition set.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrStaleState is returned when the caller's expected status no longer
	// matches the stored one. The caller should re-read and retry rather than
	// resubmit blindly.
	ErrStaleState = errors.New("order state is stale, refresh and retry")

	// ErrMissingArtifact is returned when delivery completion is attempted
	// without a complete proof-of-delivery artifact.
	ErrMissingArtifact = errors.New("proof of delivery artifact is incomplete")

	// ErrDuplicateDispute is returned when an order already has an open dispute.
	ErrDuplicateDispute = errors.New("order is already disputed")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──> Processing ──> ReadyForPickup ──> OutForDelivery ──> Completed
//	 │           │               │                  │
//	 └───────────┴───────┬───────┴──────────────────┘
//	                     ▼
//	           Cancelled / Disputed
//
// Completed and Cancelled are terminal. Disputed is terminal with respect to
// the fulfillment path; only a dispute resolution outcome can move the order
// out of it.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0) helps
	// catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned on order creation.
	New

	// Processing indicates the supplier accepted the order and is preparing it.
	Processing

	// ReadyForPickup indicates the order awaits driver pickup.
	ReadyForPickup

	// OutForDelivery indicates a driver is en route to the destination.
	OutForDelivery

	// Completed indicates delivery was confirmed with a proof-of-delivery
	// artifact. Terminal.
	Completed

	// Cancelled indicates the order was abandoned before completion. Terminal.
	Cancelled

	// Disputed indicates a party raised a dispute against the order.
	Disputed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		New:            "New",
		Processing:     "Processing",
		ReadyForPickup: "ReadyForPickup",
		OutForDelivery: "OutForDelivery",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
		Disputed:       "Disputed",
	}
}

// Validate checks that the Status value is one of the defined states.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from external sources such as the database.
func (s Status) Validate() error {
	if s == Unknown {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further fulfillment
// activity at all.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// nextFulfillment maps each status to its single allowed forward edge.
func nextFulfillment() map[Status]Status {
	return map[Status]Status{
		New:            Processing,
		Processing:     ReadyForPickup,
		ReadyForPickup: OutForDelivery,
	}
}

// Advance transitions the status along the fulfillment path or to Cancelled.
//
// Allowed edges:
//   - New -> Processing
//   - Processing -> ReadyForPickup
//   - ReadyForPickup -> OutForDelivery
//   - any non-terminal, non-disputed -> Cancelled
//
// OutForDelivery -> Completed is deliberately excluded here; completion
// requires a proof-of-delivery artifact and goes through Order.CompleteDelivery.
//
// Returns (0, ErrInvalidTransition) for any other edge, including attempts to
// skip states.
func (s Status) Advance(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if target == Cancelled {
		if s.IsTerminal() || s == Disputed {
			return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
		}
		return Cancelled, nil
	}

	if next, ok := nextFulfillment()[s]; ok && next == target {
		return target, nil
	}

	return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
}

// Complete transitions the status to Completed. Only valid from OutForDelivery.
func (s Status) Complete() (Status, error) {
	if s != OutForDelivery {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Completed)
	}

	return Completed, nil
}

// Dispute transitions the status to Disputed from any non-terminal state.
// Returns ErrDuplicateDispute when already disputed and ErrInvalidTransition
// when terminal.
func (s Status) Dispute() (Status, error) {
	if s == Disputed {
		return 0, ErrDuplicateDispute
	}
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Disputed)
	}

	return Disputed, nil
}
