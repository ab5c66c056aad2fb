package commands

import (
	"context"
	"errors"
	"fmt"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/model/review"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// ErrOrderNotCompleted is returned when a review targets an order that has
// not reached the Completed status.
var ErrOrderNotCompleted = errors.New("only completed orders can be reviewed")

// SubmitReviewCommandHandler records a contractor's rating. Eligibility is
// re-checked inside the write transaction, and the storage-level unique index
// on the order id backs up the duplicate check against concurrent submitters.
type SubmitReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewSubmitReviewCommandHandler creates a handler for review submission.
func NewSubmitReviewCommandHandler(
	uowFactory ReviewUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the review command.
func (h SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpSubmitReview, cmd.ActorRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.ContractorID().IsEqual(cmd.ContractorID()) {
		return fmt.Errorf("%w: reviewer is not the order's contractor", services.ErrAccessDenied)
	}
	if aggregate.Status() != order.Completed {
		return fmt.Errorf("%w: order is %s", ErrOrderNotCompleted, aggregate.Status())
	}

	reviewRepo := uow.ReviewRepository()
	exists, err := reviewRepo.ExistsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return review.ErrDuplicateReview
	}

	submittedAt := now()
	newReview, err := review.NewReview(
		cmd.ReviewID(), aggregate.ID(),
		aggregate.ContractorID(), aggregate.SupplierID(),
		cmd.Rating(), cmd.Comment(), submittedAt,
	)
	if err != nil {
		return err
	}

	if err = reviewRepo.Add(ctx, newReview); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.ReviewSubmitted{
		ReviewID:     newReview.ID(),
		OrderID:      aggregate.ID(),
		ContractorID: aggregate.ContractorID(),
		SupplierID:   aggregate.SupplierID(),
		Rating:       cmd.Rating(),
		At:           submittedAt,
	})

	return nil
}
