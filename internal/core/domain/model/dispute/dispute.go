// Package dispute holds the conversation and escalation state of a disputed
// order. A dispute is always paired with an order in the Disputed status; the
// pairing is made atomic by the open-dispute use case, not by this package.
package dispute

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
)

// ErrDisputeIsNotConstructed is returned when a Dispute instance was not
// created through NewDispute or RestoreDispute.
var ErrDisputeIsNotConstructed = errors.New("Dispute must be created via NewDispute or RestoreDispute")

// MediatorName is the display name used for suggestion messages the platform
// posts into a thread on a party's behalf.
const MediatorName = "Mediator"

// MediatorID returns the synthetic author identity for mediation messages.
// It is a fixed name-based UUID so that mediator entries are recognizable in
// any thread without a user record behind them.
func MediatorID() kernel.UUID {
	raw := uuid.NewSHA1(uuid.Nil, []byte(MediatorName))
	id, _ := kernel.UUIDFromBytes(raw[:])
	return id
}

// Dispute is the aggregate root for a disagreement about an order. It owns the
// append-only message thread, the escalation sub-state and the final
// resolution record.
//
// Invariants:
//   - only the contractor, the supplier or an administrator may write
//   - the thread is append-only and freezes once the dispute is Resolved
//   - mediation suggestions require both parties to have spoken first
type Dispute struct {
	id           kernel.UUID
	orderID      kernel.UUID
	contractorID kernel.UUID
	supplierID   kernel.UUID
	reason       string
	messages     []Message
	status       Status
	createdAt    time.Time

	resolvedBy *kernel.UUID
	outcome    Outcome
	resolvedAt *time.Time

	isConstructed bool
}

// NewDispute opens a dispute in status New with the raising party's opening
// message already in the thread. The opening author must be one of the two
// order parties.
func NewDispute(
	id kernel.UUID,
	orderID kernel.UUID,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	reason string,
	opening Message,
	createdAt time.Time,
) (*Dispute, error) {
	d := &Dispute{
		status:        New,
		outcome:       OutcomeNone,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setParties(contractorID, supplierID),
		d.setReason(reason),
		d.setCreatedAt(createdAt),
		opening.Validate(),
	); err != nil {
		return nil, err
	}

	if !d.isParticipant(opening.AuthorID()) {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, opening.AuthorID())
	}
	d.messages = []Message{opening}

	return d, nil
}

// RestoreDispute reconstructs a Dispute from persistence. The stored thread
// and sub-state are taken as-is after validation.
func RestoreDispute(
	id kernel.UUID,
	orderID kernel.UUID,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	reason string,
	messages []Message,
	status Status,
	createdAt time.Time,
	resolvedBy *kernel.UUID,
	outcome Outcome,
	resolvedAt *time.Time,
) (*Dispute, error) {
	d := &Dispute{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setParties(contractorID, supplierID),
		d.setReason(reason),
		d.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	if len(messages) == 0 {
		return nil, errs.NewValueIsRequiredError("messages")
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	d.messages = make([]Message, len(messages))
	copy(d.messages, messages)

	if status == Resolved {
		if resolvedBy == nil || resolvedAt == nil {
			return nil, errs.NewValueIsRequiredError("resolution")
		}
		if err := errors.Join(resolvedBy.Validate(), outcome.Validate()); err != nil {
			return nil, err
		}
		d.resolvedBy = resolvedBy
		d.outcome = outcome
		d.resolvedAt = resolvedAt
	}

	return d, nil
}

// Validate ensures the Dispute was created via a constructor.
func (d *Dispute) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDisputeIsNotConstructed
	}

	return nil
}

// IsEqual compares two disputes by identity.
func (d *Dispute) IsEqual(other *Dispute) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the dispute identifier.
func (d *Dispute) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the disputed order.
func (d *Dispute) OrderID() kernel.UUID {
	return d.orderID
}

// ContractorID returns the buyer side of the dispute.
func (d *Dispute) ContractorID() kernel.UUID {
	return d.contractorID
}

// SupplierID returns the seller side of the dispute.
func (d *Dispute) SupplierID() kernel.UUID {
	return d.supplierID
}

// Reason returns the short description given when the dispute was raised.
func (d *Dispute) Reason() string {
	return d.reason
}

// Messages returns a copy of the thread in insertion order.
func (d *Dispute) Messages() []Message {
	messages := make([]Message, len(d.messages))
	copy(messages, d.messages)
	return messages
}

// Status returns the current sub-state.
func (d *Dispute) Status() Status {
	return d.status
}

// CreatedAt returns the moment the dispute was opened.
func (d *Dispute) CreatedAt() time.Time {
	return d.createdAt
}

// ResolvedBy returns the resolving administrator, or nil while open.
func (d *Dispute) ResolvedBy() *kernel.UUID {
	return d.resolvedBy
}

// Outcome returns the recorded resolution outcome, OutcomeNone while open.
func (d *Dispute) Outcome() Outcome {
	return d.outcome
}

// ResolvedAt returns the resolution timestamp, or nil while open.
func (d *Dispute) ResolvedAt() *time.Time {
	return d.resolvedAt
}

// IsResolved reports whether the dispute reached its terminal sub-state.
func (d *Dispute) IsResolved() bool {
	return d.status == Resolved
}

func (d *Dispute) isParticipant(authorID kernel.UUID) bool {
	return authorID.IsEqual(d.contractorID) || authorID.IsEqual(d.supplierID)
}

// AddMessage appends a message to the thread. Participants may always write
// while the dispute is open; any other author must be an administrator, whose
// message escalates the thread to UnderAdminReview.
//
// A party's message moves the sub-state to the matching Responded state unless
// the thread is already under admin review.
func (d *Dispute) AddMessage(m Message, isAdmin bool) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if d.status == Resolved {
		return fmt.Errorf("%w: thread is frozen", ErrDisputeClosed)
	}

	author := m.AuthorID()
	if !d.isParticipant(author) && !isAdmin {
		return fmt.Errorf("%w: %s", ErrUnauthorized, author)
	}

	d.messages = append(d.messages, m)

	switch {
	case !d.isParticipant(author):
		d.status = UnderAdminReview
	case d.status == UnderAdminReview:
		// Party replies during review do not de-escalate.
	case author.IsEqual(d.contractorID):
		d.status = ContractorResponded
	default:
		d.status = SupplierResponded
	}

	return nil
}

// IsMediationEligible reports whether a mediation suggestion may be posted:
// both parties must have at least one message in the thread and the dispute
// must still be open. Once both parties have spoken, eligibility holds for as
// long as the dispute lives; resolution ends the dispute's life and freezes
// the thread with it. Mediator entries never count toward eligibility.
func (d *Dispute) IsMediationEligible() bool {
	if d.status == Resolved {
		return false
	}

	var contractorSpoke, supplierSpoke bool
	for _, m := range d.messages {
		if m.AuthorID().IsEqual(d.contractorID) {
			contractorSpoke = true
		}
		if m.AuthorID().IsEqual(d.supplierID) {
			supplierSpoke = true
		}
	}
	return contractorSpoke && supplierSpoke
}

// AcceptSuggestion posts an advisory-produced suggestion into the thread under
// the mediator identity. Allowed only when the dispute is mediation eligible;
// the sub-state is left untouched.
func (d *Dispute) AcceptSuggestion(suggestion string, at time.Time) (Message, error) {
	if d.status == Resolved {
		return Message{}, fmt.Errorf("%w: thread is frozen", ErrDisputeClosed)
	}
	if !d.IsMediationEligible() {
		return Message{}, ErrNotMediationEligible
	}

	m, err := NewMessage(kernel.NewUUID(), MediatorID(), MediatorName, suggestion, at)
	if err != nil {
		return Message{}, err
	}

	d.messages = append(d.messages, m)
	return m, nil
}

// Resolve closes the dispute with the administrator's decision. The thread
// freezes; what happens to the order is the resolve use case's concern.
func (d *Dispute) Resolve(adminID kernel.UUID, outcome Outcome, at time.Time) error {
	if d.status == Resolved {
		return fmt.Errorf("%w: already resolved", ErrDisputeClosed)
	}

	if err := errors.Join(adminID.Validate(), outcome.Validate()); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	d.status = Resolved
	d.resolvedBy = &adminID
	d.outcome = outcome
	d.resolvedAt = &at
	return nil
}

func (d *Dispute) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dispute) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Dispute) setParties(contractorID, supplierID kernel.UUID) error {
	if err := errors.Join(contractorID.Validate(), supplierID.Validate()); err != nil {
		return err
	}

	d.contractorID = contractorID
	d.supplierID = supplierID
	return nil
}

func (d *Dispute) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	d.reason = reason
	return nil
}

func (d *Dispute) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}
