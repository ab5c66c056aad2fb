package dispute

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when a message author is neither a dispute
	// participant nor an administrator.
	ErrUnauthorized = errors.New("author is not a dispute participant")

	// ErrDisputeClosed is returned when mutating a dispute that has already
	// been resolved.
	ErrDisputeClosed = errors.New("dispute is resolved and closed")

	// ErrNotMediationEligible is returned when a mediation suggestion is
	// accepted before both parties have participated.
	ErrNotMediationEligible = errors.New("dispute is not eligible for mediation yet")
)

// Status is the dispute's sub-state within the Disputed order:
//
//	New -> {ContractorResponded, SupplierResponded} -> UnderAdminReview -> Resolved
//
// The responded states track which side spoke last; an administrator message
// moves the thread under review, and Resolve is the only exit.
type Status int

const (
	Unknown Status = iota
	New
	ContractorResponded
	SupplierResponded
	UnderAdminReview
	Resolved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		New:                 "New",
		ContractorResponded: "ContractorResponded",
		SupplierResponded:   "SupplierResponded",
		UnderAdminReview:    "UnderAdminReview",
		Resolved:            "Resolved",
	}
}

// Validate checks the status value when rehydrating from storage.
func (s Status) Validate() error {
	if s == Unknown {
		return fmt.Errorf("%d is not a valid dispute status", s)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid dispute status", s)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Outcome is the administrator's decision about the underlying order when a
// dispute is resolved. The mapping to an order status change is applied by
// the resolve operation, not implied by the dispute record itself.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeCancelOrder voids the order.
	OutcomeCancelOrder
	// OutcomeCompleteOrder upholds the delivery and completes the order.
	OutcomeCompleteOrder
	// OutcomeRemainDisputed records the resolution without reopening or
	// closing the order's fulfillment path.
	OutcomeRemainDisputed
)

func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomeNone:           "None",
		OutcomeCancelOrder:    "CancelOrder",
		OutcomeCompleteOrder:  "CompleteOrder",
		OutcomeRemainDisputed: "RemainDisputed",
	}
}

// Validate checks that the outcome is an actionable decision.
func (o Outcome) Validate() error {
	if o == OutcomeNone {
		return fmt.Errorf("%d is not a valid resolution outcome", o)
	}
	if _, ok := getOutcomeStrings()[o]; !ok {
		return fmt.Errorf("%d is not a valid resolution outcome", o)
	}
	return nil
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if str, ok := getOutcomeStrings()[o]; ok {
		return str
	}
	return "None"
}
