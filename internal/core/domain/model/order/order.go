package order

import (
	"errors"
	"fmt"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrDeliveryNotAssigned is returned when a delivery-phase operation runs
	// against an order that has no delivery details attached yet.
	ErrDeliveryNotAssigned = errors.New("order has no delivery assigned")
)

// Order is the aggregate root for a purchase transaction between a contractor
// (buyer) and a supplier (seller/fulfiller).
//
// Invariants:
//   - status only changes through the guarded transition methods below
//   - every transition method takes the status the caller last observed and
//     fails with ErrStaleState on mismatch (compare-and-set)
//   - proof of delivery is attached exactly once, on completion
//   - the item list and total are fixed at creation
type Order struct {
	id           kernel.UUID
	number       string
	contractorID kernel.UUID
	supplierID   kernel.UUID
	items        []LineItem
	totalCents   int64
	status       Status
	createdAt    time.Time
	delivery     *DeliveryDetails
	pod          *ProofOfDelivery

	isConstructed bool
}

// NewOrder creates a new Order in status New. The total is computed from the
// line items; at least one item is required.
func NewOrder(
	id kernel.UUID,
	number string,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	items []LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(contractorID, supplierID),
		o.setItems(items),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored status,
// delivery details and proof of delivery are taken as-is after validation;
// business transitions are not re-run.
func RestoreOrder(
	id kernel.UUID,
	number string,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	items []LineItem,
	status Status,
	createdAt time.Time,
	delivery *DeliveryDetails,
	pod *ProofOfDelivery,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(contractorID, supplierID),
		o.setItems(items),
		o.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return nil, err
		}
		o.delivery = delivery
	}

	if pod != nil {
		if err := pod.Validate(); err != nil {
			return nil, err
		}
		if status != Completed && status != Disputed {
			return nil, fmt.Errorf("%w: proof of delivery on %s order", ErrInvalidTransition, status)
		}
		o.pod = pod
	}

	return o, nil
}

// Validate ensures the Order was created via a constructor. Called by
// repositories before persisting.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// ContractorID returns the buyer's identifier.
func (o *Order) ContractorID() kernel.UUID {
	return o.contractorID
}

// SupplierID returns the seller's identifier.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalCents returns the order total in cents.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Delivery returns the attached delivery details, or nil before assignment.
func (o *Order) Delivery() *DeliveryDetails {
	return o.delivery
}

// ProofOfDelivery returns the attached handover artifact, or nil.
func (o *Order) ProofOfDelivery() *ProofOfDelivery {
	return o.pod
}

// checkExpected is the compare-and-set gate shared by all transitions.
func (o *Order) checkExpected(expected Status) error {
	if o.status != expected {
		return fmt.Errorf("%w: expected %s, have %s", ErrStaleState, expected, o.status)
	}
	return nil
}

// Advance moves the order along the fulfillment path or to Cancelled.
// The caller supplies the status it last observed; on mismatch the write is
// rejected with ErrStaleState and on a disallowed edge with
// ErrInvalidTransition. The status is unchanged on any failure.
func (o *Order) Advance(target, expected Status) error {
	if err := o.checkExpected(expected); err != nil {
		return err
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignDelivery attaches delivery details. Allowed while the order is in
// Processing or ReadyForPickup; the identity fields are then immutable.
func (o *Order) AssignDelivery(details DeliveryDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	if o.status != Processing && o.status != ReadyForPickup {
		return fmt.Errorf("%w: cannot assign delivery in status %s", ErrInvalidTransition, o.status)
	}

	o.delivery = &details
	return nil
}

// CompleteDelivery confirms handover: only valid from OutForDelivery, only
// with a complete artifact, and only when the caller's expectation matches.
// Status flip and artifact attachment happen together or not at all.
func (o *Order) CompleteDelivery(pod ProofOfDelivery, expected Status) error {
	if err := o.checkExpected(expected); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	if err = pod.Validate(); err != nil {
		return err
	}
	if !pod.IsComplete() {
		return fmt.Errorf("%w: image and signature refs are required", ErrMissingArtifact)
	}
	if o.pod != nil {
		return fmt.Errorf("%w: proof of delivery already attached", ErrInvalidTransition)
	}

	o.status = newStatus
	o.pod = &pod
	return nil
}

// MarkDisputed forces the order into Disputed. Invoked only by the dispute
// engine as one half of its atomic open-dispute operation.
func (o *Order) MarkDisputed(expected Status) error {
	if err := o.checkExpected(expected); err != nil {
		return err
	}

	newStatus, err := o.status.Dispute()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ApplyResolution moves a disputed order to the terminal status chosen by the
// dispute administrator, or leaves it Disputed when the outcome says so.
func (o *Order) ApplyResolution(target Status) error {
	if o.status != Disputed {
		return fmt.Errorf("%w: order is not disputed", ErrInvalidTransition)
	}

	switch target {
	case Disputed:
		return nil
	case Completed, Cancelled:
		o.status = target
		return nil
	default:
		return fmt.Errorf("%w: %s is not a valid resolution target", ErrInvalidTransition, target)
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(contractorID, supplierID kernel.UUID) error {
	if err := errors.Join(contractorID.Validate(), supplierID.Validate()); err != nil {
		return err
	}

	o.contractorID = contractorID
	o.supplierID = supplierID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var total int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.SubtotalCents()
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	o.totalCents = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
