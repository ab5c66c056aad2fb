// Package advisory provides the default implementation of the advisory port.
//
// Answers are produced from templates over the data the caller already holds.
// Deployments with a real content-generation backend swap this adapter out at
// the composition root; the rest of the module only sees the port.
package advisory

import (
	"context"
	"fmt"
	"time"

	"supplyflow/internal/core/domain/model/dispute"
	"supplyflow/internal/core/domain/model/order"
	"supplyflow/internal/core/domain/services"
	"supplyflow/internal/core/ports"
)

// LocalAdvisor answers delivery questions and drafts settlement suggestions
// from templates. It never fails and never calls out.
type LocalAdvisor struct{}

var _ ports.AdvisoryService = LocalAdvisor{}

// NewLocalAdvisor creates a template-based advisor.
func NewLocalAdvisor() LocalAdvisor {
	return LocalAdvisor{}
}

// SuggestResolution drafts a neutral settlement suggestion from the thread.
func (LocalAdvisor) SuggestResolution(_ context.Context, d *dispute.Dispute) (string, error) {
	return fmt.Sprintf(
		"Both parties have stated their position on %q across %d messages. "+
			"Suggested next step: agree on a partial refund or a redelivery; "+
			"if no agreement is reached, an administrator will decide the outcome.",
		d.Reason(), len(d.Messages()),
	), nil
}

// AnswerDeliveryQuestion answers from the order and the current projection.
func (LocalAdvisor) AnswerDeliveryQuestion(
	_ context.Context,
	question string,
	aggregate *order.Order,
	projection services.DeliveryProjection,
) (string, error) {
	delivery := aggregate.Delivery()

	return fmt.Sprintf(
		"Regarding %q on order %s: the order is %s, driver %s is %d%% of the way "+
			"to the destination and expected to arrive around %s.",
		question,
		aggregate.Number(),
		aggregate.Status(),
		delivery.DriverName(),
		int(projection.Progress*100),
		projection.ETA.Format(time.Kitchen),
	), nil
}
