package services

import (
	"errors"
	"fmt"
)

// ErrAccessDenied is returned when a role is not permitted to perform an
// operation.
var ErrAccessDenied = errors.New("role is not permitted to perform this operation")

// Role identifies the kind of actor invoking an operation.
type Role int

const (
	RoleUnknown Role = iota
	RoleContractor
	RoleSupplier
	RoleDriver
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleContractor: "Contractor",
		RoleSupplier:   "Supplier",
		RoleDriver:     "Driver",
		RoleAdmin:      "Admin",
	}
}

// Validate checks the role value.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return fmt.Errorf("%d is not a valid role", r)
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return fmt.Errorf("%d is not a valid role", r)
	}
	return nil
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Operation names a protected use case.
type Operation string

const (
	OpCreateOrder          Operation = "order.create"
	OpAdvanceOrder         Operation = "order.advance"
	OpCancelOrder          Operation = "order.cancel"
	OpAssignDelivery       Operation = "delivery.assign"
	OpCompleteDelivery     Operation = "delivery.complete"
	OpDescribeDelivery     Operation = "delivery.describe"
	OpAskDeliveryQuestion  Operation = "delivery.ask"
	OpOpenDispute          Operation = "dispute.open"
	OpAddDisputeMessage    Operation = "dispute.message"
	OpAcceptSuggestion     Operation = "dispute.accept_suggestion"
	OpResolveDispute       Operation = "dispute.resolve"
	OpReorderItems         Operation = "order.reorder"
	OpSubmitReview         Operation = "review.submit"
	OpListNotifications    Operation = "notification.list"
	OpMarkNotificationRead Operation = "notification.mark_read"
)

// AccessPolicy is the single authorization table for the module. Command and
// query handlers consult it; call sites never hardcode role checks.
//
// The table answers "may this role invoke this operation at all". Finer
// checks, such as dispute thread membership, stay with the aggregates.
type AccessPolicy struct {
	allowed map[Operation]map[Role]struct{}
}

// NewAccessPolicy creates the policy with the built-in permission table.
func NewAccessPolicy() AccessPolicy {
	grant := func(roles ...Role) map[Role]struct{} {
		m := make(map[Role]struct{}, len(roles))
		for _, r := range roles {
			m[r] = struct{}{}
		}
		return m
	}

	return AccessPolicy{
		allowed: map[Operation]map[Role]struct{}{
			OpCreateOrder:          grant(RoleContractor, RoleAdmin),
			OpAdvanceOrder:         grant(RoleSupplier, RoleAdmin),
			OpCancelOrder:          grant(RoleContractor, RoleSupplier, RoleAdmin),
			OpAssignDelivery:       grant(RoleSupplier, RoleAdmin),
			OpCompleteDelivery:     grant(RoleDriver, RoleAdmin),
			OpDescribeDelivery:     grant(RoleContractor, RoleSupplier, RoleDriver, RoleAdmin),
			OpAskDeliveryQuestion:  grant(RoleContractor, RoleSupplier, RoleAdmin),
			OpOpenDispute:          grant(RoleContractor, RoleSupplier),
			OpAddDisputeMessage:    grant(RoleContractor, RoleSupplier, RoleAdmin),
			OpAcceptSuggestion:     grant(RoleContractor, RoleSupplier),
			OpResolveDispute:       grant(RoleAdmin),
			OpReorderItems:         grant(RoleContractor),
			OpSubmitReview:         grant(RoleContractor),
			OpListNotifications:    grant(RoleContractor, RoleSupplier, RoleDriver, RoleAdmin),
			OpMarkNotificationRead: grant(RoleContractor, RoleSupplier, RoleDriver, RoleAdmin),
		},
	}
}

// CanPerform reports whether the role may invoke the operation.
func (p AccessPolicy) CanPerform(op Operation, role Role) bool {
	roles, ok := p.allowed[op]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Authorize returns ErrAccessDenied when the role may not invoke the
// operation.
func (p AccessPolicy) Authorize(op Operation, role Role) error {
	if !p.CanPerform(op, role) {
		return fmt.Errorf("%w: %s for %s", ErrAccessDenied, role, op)
	}
	return nil
}
