package ports

import (
	"context"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
)

// HubRepository defines the persistence contract for hub aggregates.
//
// Load counters are never written through Update. They move only through the
// Record* methods, each a single atomic statement in the store, so concurrent
// transitions on different orders never lose an increment.
type HubRepository interface {
	// Add persists a new hub. A second active hub for the same district
	// violates the store's uniqueness rule and fails with hub.ErrDistrictAlreadyServed.
	Add(ctx context.Context, h *hub.Hub) error

	// Update persists descriptive fields, status and manager.
	Update(ctx context.Context, h *hub.Hub) error

	Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error)

	// ListActiveByDistrict returns the active hubs of district. Normally zero or one.
	ListActiveByDistrict(ctx context.Context, district kernel.District) ([]*hub.Hub, error)

	// RecordArrival adds one to the hub's current orders.
	RecordArrival(ctx context.Context, id kernel.UUID) error

	// RecordDispatch releases one slot and counts one dispatched order.
	// It reports false when the counter was already zero; the dispatch count still moves.
	RecordDispatch(ctx context.Context, id kernel.UUID) (bool, error)

	// RecordDelivery releases one slot and counts one processed order.
	RecordDelivery(ctx context.Context, id kernel.UUID) (bool, error)

	// ReleaseSlot releases one slot without touching stats, for cancelled orders.
	ReleaseSlot(ctx context.Context, id kernel.UUID) (bool, error)
}
