package queries

import (
	"errors"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/pkg/errs"
	"supplyflow/internal/pkg/guard"
)

var ErrAskDeliveryQuestionQueryIsNotConstructed = errors.New(
	"AskDeliveryQuestionQuery must be created via NewAskDeliveryQuestionQuery constructor",
)

// AskDeliveryQuestionQuery carries a free-form question about an active
// delivery leg.
type AskDeliveryQuestionQuery struct {
	orderID   kernel.UUID
	question  string
	actorRole services.Role

	guard guard.ConstructorGuard
}

// NewAskDeliveryQuestionQuery creates a delivery question query.
func NewAskDeliveryQuestionQuery(
	orderID kernel.UUID,
	question string,
	actorRole services.Role,
) (AskDeliveryQuestionQuery, error) {
	if err := errors.Join(orderID.Validate(), actorRole.Validate()); err != nil {
		return AskDeliveryQuestionQuery{}, err
	}
	if question == "" {
		return AskDeliveryQuestionQuery{}, errs.NewValueIsRequiredError("question")
	}

	return AskDeliveryQuestionQuery{
		orderID:   orderID,
		question:  question,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AskDeliveryQuestionQuery) Validate() error {
	return q.guard.Validate(ErrAskDeliveryQuestionQueryIsNotConstructed)
}

// OrderID returns the order the question is about.
func (q AskDeliveryQuestionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Question returns the question text.
func (q AskDeliveryQuestionQuery) Question() string {
	return q.question
}

// ActorRole returns the role of the caller.
func (q AskDeliveryQuestionQuery) ActorRole() services.Role {
	return q.actorRole
}

// AskDeliveryQuestionQueryResponse holds the generated answer.
type AskDeliveryQuestionQueryResponse struct {
	Answer string
}
