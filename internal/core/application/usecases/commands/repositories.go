// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence. Domain events are published only
// after a successful commit.
package commands

import (
	"context"

	"supplyflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DisputeRepoFactory provides access to the dispute repository within a transaction.
	DisputeRepoFactory interface {
		DisputeRepository() ports.DisputeRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DisputeUoW manages transactions spanning the order and dispute
	// aggregates. Opening and resolving disputes writes both inside one
	// transaction, so the pairing commits or rolls back as a unit.
	DisputeUoW interface {
		TxManager
		OrderRepoFactory
		DisputeRepoFactory
	}

	// DisputeUoWFactory creates new dispute unit of work instances.
	DisputeUoWFactory interface {
		Create() DisputeUoW
	}

	// ReviewUoW manages transactions spanning the order and review
	// aggregates; the eligibility re-check reads the order in the same
	// transaction as the review insert.
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ReviewRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	// NotificationUoW manages transactions for notification-only operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
