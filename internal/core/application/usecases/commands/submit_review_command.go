package commands

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/review"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrSubmitReviewCommandIsNotConstructed = errors.New(
	"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
)

// SubmitReviewCommand represents a contractor's rating of a completed order.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	reviewID     kernel.UUID
	orderID      kernel.UUID
	contractorID kernel.UUID
	rating       int
	comment      string
	actorRole    services.Role

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand creates a command to submit a review.
func NewSubmitReviewCommand(
	reviewID kernel.UUID,
	orderID kernel.UUID,
	contractorID kernel.UUID,
	rating int,
	comment string,
	actorRole services.Role,
) (SubmitReviewCommand, error) {
	cmd := SubmitReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(reviewID, orderID, contractorID),
		cmd.setRating(rating),
		cmd.setActorRole(actorRole),
	); err != nil {
		return SubmitReviewCommand{}, err
	}
	cmd.comment = comment

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

// ReviewID returns the identifier for the new review.
func (c SubmitReviewCommand) ReviewID() kernel.UUID {
	return c.reviewID
}

// OrderID returns the reviewed order.
func (c SubmitReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ContractorID returns the reviewing contractor.
func (c SubmitReviewCommand) ContractorID() kernel.UUID {
	return c.contractorID
}

// Rating returns the 1..5 star rating.
func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the optional free-form comment.
func (c SubmitReviewCommand) Comment() string {
	return c.comment
}

// ActorRole returns the role of the caller.
func (c SubmitReviewCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *SubmitReviewCommand) setIDs(reviewID, orderID, contractorID kernel.UUID) error {
	if err := errors.Join(
		reviewID.Validate(),
		orderID.Validate(),
		contractorID.Validate(),
	); err != nil {
		return err
	}
	c.reviewID = reviewID
	c.orderID = orderID
	c.contractorID = contractorID
	return nil
}

func (c *SubmitReviewCommand) setRating(rating int) error {
	if rating < review.MinRating || rating > review.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, review.MinRating, review.MaxRating)
	}
	c.rating = rating
	return nil
}

func (c *SubmitReviewCommand) setActorRole(actorRole services.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}
