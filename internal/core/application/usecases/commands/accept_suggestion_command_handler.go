package commands

import (
	"context"
	"time"

	"supplyflow/internal/core/domain/events"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// advisoryTimeout bounds calls to the external advisory backend so a slow
// model cannot hold a database transaction open indefinitely.
const advisoryTimeout = 10 * time.Second

// AcceptSuggestionCommandHandler fetches a settlement suggestion from the
// advisory backend and posts it into the thread under the mediator identity.
// The eligibility gate (both parties must have spoken) sits in the aggregate;
// an advisory failure returns an error with no state change.
type AcceptSuggestionCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.AccessPolicy
	advisory   ports.AdvisoryService
	publisher  ports.EventPublisher
}

// NewAcceptSuggestionCommandHandler creates a handler for mediation suggestions.
func NewAcceptSuggestionCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.AccessPolicy,
	advisory ports.AdvisoryService,
	publisher ports.EventPublisher,
) AcceptSuggestionCommandHandler {
	return AcceptSuggestionCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		advisory:   advisory,
		publisher:  publisher,
	}
}

// Handle processes the accept-suggestion command.
func (h AcceptSuggestionCommandHandler) Handle(ctx context.Context, cmd AcceptSuggestionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Authorize(services.OpAcceptSuggestion, cmd.ActorRole()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	disputeRepo := uow.DisputeRepository()
	aggregate, err := disputeRepo.Get(ctx, cmd.DisputeID())
	if err != nil {
		return err
	}

	if !aggregate.IsMediationEligible() {
		return dispute.ErrNotMediationEligible
	}

	advisoryCtx, cancel := context.WithTimeout(ctx, advisoryTimeout)
	defer cancel()

	suggestion, err := h.advisory.SuggestResolution(advisoryCtx, aggregate)
	if err != nil {
		return err
	}

	message, err := aggregate.AcceptSuggestion(suggestion, now())
	if err != nil {
		return err
	}

	if err = disputeRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DisputeMessageAdded{
		DisputeID:    aggregate.ID(),
		OrderID:      aggregate.OrderID(),
		ContractorID: aggregate.ContractorID(),
		SupplierID:   aggregate.SupplierID(),
		AuthorID:     message.AuthorID(),
		AuthorName:   message.AuthorName(),
		At:           message.SentAt(),
	})

	return nil
}
