// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"hubflow/internal/core/ports"
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

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HubRepoFactory provides access to hub repository within a transaction.
	HubRepoFactory interface {
		HubRepository() ports.HubRepository
	}

	// NotificationRepoFactory provides access to notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OutboxRepoFactory provides access to the transition outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// TaskRepoFactory provides access to scheduled tasks within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// OrderUoW manages transactions for order transitions. A transition moves
	// the order, the load counters of the hubs involved and any scheduled
	// arrival task together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... transition o
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.HubRepository().RecordArrival(ctx, hubID)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HubRepoFactory
		TaskRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// HubUoW manages transactions for hub directory operations.
	HubUoW interface {
		TxManager
		HubRepoFactory
	}

	// HubUoWFactory creates new hub unit of work instances.
	HubUoWFactory interface {
		Create() HubUoW
	}

	// NotificationUoW manages transactions for the read state of notifications.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// RelayUoW manages one relay step: claim an outbox message, resolve hub
	// managers, insert notifications and settle the message. The order is read
	// only to check that a pickup code is still live before mailing it.
	RelayUoW interface {
		TxManager
		OutboxRepoFactory
		NotificationRepoFactory
		HubRepoFactory
		OrderRepoFactory
	}

	// RelayUoWFactory creates new relay unit of work instances.
	RelayUoWFactory interface {
		Create() RelayUoW
	}
)
