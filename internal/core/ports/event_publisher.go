package ports

import (
	"context"

	"supplyflow/internal/core/domain/events"
)

// EventPublisher receives domain events after the producing transaction has
// committed. Implementations must not fail the caller: publishing is
// best-effort from the command handler's point of view, and durability is the
// implementation's problem.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent)
}
