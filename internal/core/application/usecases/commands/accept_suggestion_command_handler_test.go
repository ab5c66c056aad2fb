package commands_test

import (
	"errors"
	"testing"
	"time"

	"supplyflow/internal/core/application/usecases/commands"
	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func eligibleDispute(t *testing.T) *dispute.Dispute {
	t.Helper()

	stored := storedDispute(t, storedOrder(t, order.Disputed))
	reply, err := dispute.NewMessage(
		kernel.NewUUID(), stored.SupplierID(), "StroyBaza", "Photos please", time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, stored.AddMessage(reply, false))
	return stored
}

func TestAcceptSuggestionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := eligibleDispute(t)

	cmd, err := commands.NewAcceptSuggestionCommand(stored.ID(), services.RoleContractor)
	require.NoError(t, err)

	repo := new(MockDisputeRepository)
	advisory := new(MockAdvisoryService)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		advisory.On("SuggestResolution", mock.Anything, stored).
			Return("Consider a partial refund", nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(RecordingPublisher)

	h := commands.NewAcceptSuggestionCommandHandler(factory, services.NewAccessPolicy(), advisory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	messages := stored.Messages()
	last := messages[len(messages)-1]
	require.Equal(t, dispute.MediatorID(), last.AuthorID())
	require.Equal(t, "Consider a partial refund", last.Body())
	require.Len(t, publisher.Events, 1)
	advisory.AssertExpectations(t)
}

func TestAcceptSuggestionCommandHandler_Handle_NotEligible(t *testing.T) {
	ctx := t.Context()
	stored := storedDispute(t, storedOrder(t, order.Disputed)) // only the opening message

	cmd, err := commands.NewAcceptSuggestionCommand(stored.ID(), services.RoleContractor)
	require.NoError(t, err)

	repo := new(MockDisputeRepository)
	advisory := new(MockAdvisoryService)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptSuggestionCommandHandler(factory, services.NewAccessPolicy(), advisory, new(RecordingPublisher))
	require.ErrorIs(t, h.Handle(ctx, cmd), dispute.ErrNotMediationEligible)
	advisory.AssertNotCalled(t, "SuggestResolution", mock.Anything, mock.Anything)
}

func TestAcceptSuggestionCommandHandler_Handle_AdvisoryFailure(t *testing.T) {
	ctx := t.Context()
	stored := eligibleDispute(t)
	before := len(stored.Messages())

	cmd, err := commands.NewAcceptSuggestionCommand(stored.ID(), services.RoleSupplier)
	require.NoError(t, err)

	repo := new(MockDisputeRepository)
	advisory := new(MockAdvisoryService)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		advisory.On("SuggestResolution", mock.Anything, stored).
			Return("", errors.New("advisory backend unavailable")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(RecordingPublisher)

	h := commands.NewAcceptSuggestionCommandHandler(factory, services.NewAccessPolicy(), advisory, publisher)
	require.Error(t, h.Handle(ctx, cmd))
	require.Len(t, stored.Messages(), before)
	require.Empty(t, publisher.Events)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAcceptSuggestionCommandHandler_Handle_AdminDenied(t *testing.T) {
	cmd, err := commands.NewAcceptSuggestionCommand(kernel.NewUUID(), services.RoleAdmin)
	require.NoError(t, err)

	h := commands.NewAcceptSuggestionCommandHandler(
		new(MockDisputeUoWFactory), services.NewAccessPolicy(), new(MockAdvisoryService), new(RecordingPublisher),
	)
	require.ErrorIs(t, h.Handle(t.Context(), cmd), services.ErrAccessDenied)
}
