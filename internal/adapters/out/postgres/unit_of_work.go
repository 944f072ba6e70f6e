// Package postgres provides the GORM-based Unit of Work for the fulfillment core.
// The unit of work holds one database transaction and hands out repositories
// bound to it, so a transition, its hub counter moves, its scheduled tasks and
// its outbox events commit or roll back together.
//
// Key Features:
//   - Transaction management across the order, hub, notification, outbox and task repositories
//   - Order tracking: events raised by tracked orders are written to the outbox on Commit
//   - Isolation between concurrent operations: one instance per command
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err := o.Approve(actor, now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is
// safe to ignore in the deferred call.
package postgres

import (
	"context"
	"fmt"

	"hubflow/internal/adapters/out/postgres/hubrepo"
	"hubflow/internal/adapters/out/postgres/notificationrepo"
	"hubflow/internal/adapters/out/postgres/orderrepo"
	"hubflow/internal/adapters/out/postgres/outboxrepo"
	"hubflow/internal/adapters/out/postgres/taskrepo"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/outbox"
	"hubflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the orders
// changed inside it. On Commit the events those orders raised are stored as
// pending outbox messages in the same transaction; the outbox relay turns them
// into notifications and pickup emails afterwards.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the tracked orders' events to the outbox and commits.
// Events are cleared from the orders only after the commit succeeded, so a
// failed commit leaves them in place for a retry with a fresh unit of work.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	orders, messages, err := uow.pendingEvents()
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...); err != nil {
			return fmt.Errorf("write outbox: %w", err)
		}
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, o := range orders {
		o.ClearEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards all changes made within the current transaction, including
// any outbox rows. Tracked orders keep their events.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides order persistence within the unit of work.
// Added and updated orders are tracked for the outbox.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// HubRepository provides hub persistence within the unit of work.
func (uow *GormUnitOfWork) HubRepository() ports.HubRepository {
	return hubrepo.NewGormHubRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) TaskRepository() ports.TaskRepository {
	return taskrepo.NewGormTaskRepository(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repository implementations call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the active transaction, or the plain connection outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pendingEvents collects the distinct tracked orders and one outbox message per
// raised event. An order tracked by both Add and Update contributes its events once.
func (uow *GormUnitOfWork) pendingEvents() ([]*order.Order, []*outbox.Message, error) {
	var (
		orders   []*order.Order
		messages []*outbox.Message
		seen     = make(map[kernel.UUID]struct{})
		tracked  = make(map[*order.Order]struct{})
	)

	for _, t := range uow.trackedAggregates {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, dup := tracked[o]; dup {
			continue
		}
		tracked[o] = struct{}{}
		orders = append(orders, o)

		for _, e := range o.Events() {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}

			m, err := outbox.NewMessage(e, e.OccurredAt)
			if err != nil {
				return nil, nil, err
			}
			messages = append(messages, m)
		}
	}

	return orders, messages, nil
}
