// Package review models post-completion feedback a contractor leaves for a
// supplier. At most one review exists per order; the uniqueness is backed by
// the storage layer and surfaced as ErrDuplicateReview.
package review

import (
	"errors"
	"time"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrReviewIsNotConstructed is returned when a Review instance was not
	// created through NewReview or RestoreReview.
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview")

	// ErrDuplicateReview is returned when an order already has a review.
	ErrDuplicateReview = errors.New("order already has a review")
)

// Review is the aggregate root for a contractor's rating of a fulfilled order.
type Review struct {
	id           kernel.UUID
	orderID      kernel.UUID
	contractorID kernel.UUID
	supplierID   kernel.UUID
	rating       int
	comment      string
	createdAt    time.Time

	isConstructed bool
}

// NewReview creates a review with a rating between MinRating and MaxRating.
// The comment is optional.
func NewReview(
	id kernel.UUID,
	orderID kernel.UUID,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	r := &Review{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setIDs(id, orderID, contractorID, supplierID),
		r.setRating(rating),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	r.comment = comment

	return r, nil
}

// RestoreReview reconstructs a Review from persistence.
func RestoreReview(
	id kernel.UUID,
	orderID kernel.UUID,
	contractorID kernel.UUID,
	supplierID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	return NewReview(id, orderID, contractorID, supplierID, rating, comment, createdAt)
}

// Validate ensures the Review was created via a constructor.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}

	return nil
}

// IsEqual compares two reviews by identity.
func (r *Review) IsEqual(other *Review) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the review identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// OrderID returns the reviewed order's identifier.
func (r *Review) OrderID() kernel.UUID {
	return r.orderID
}

// ContractorID returns the reviewing contractor.
func (r *Review) ContractorID() kernel.UUID {
	return r.contractorID
}

// SupplierID returns the reviewed supplier.
func (r *Review) SupplierID() kernel.UUID {
	return r.supplierID
}

// Rating returns the 1..5 star rating.
func (r *Review) Rating() int {
	return r.rating
}

// Comment returns the optional free-form comment.
func (r *Review) Comment() string {
	return r.comment
}

// CreatedAt returns the submission timestamp.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Review) setIDs(id, orderID, contractorID, supplierID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		contractorID.Validate(),
		supplierID.Validate(),
	); err != nil {
		return err
	}

	r.id = id
	r.orderID = orderID
	r.contractorID = contractorID
	r.supplierID = supplierID
	return nil
}

func (r *Review) setRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	r.rating = rating
	return nil
}

func (r *Review) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	r.createdAt = createdAt
	return nil
}
