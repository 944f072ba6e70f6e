// Package ports defines the contracts between the fulfillment domain and its
// infrastructure: repositories, the unit of work, the admin directory and the mailer.
package ports

import (
	"context"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. The order number must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a transitioned order. The write is conditional on the
	// version the order was loaded with; when another transaction got there
	// first it fails with errs.ConcurrentModificationError and nothing is written.
	// On success the aggregate's version is advanced.
	//
	// Example:
	//   err := repo.Update(ctx, o)
	//   if errors.Is(err, errs.ErrConcurrentModification) {
	//       // reload and re-check the transition
	//   }
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-facing ORD number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetForShare retrieves an order and holds a share lock on it until the
	// transaction ends, so no transition can commit in between.
	GetForShare(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
