package queries

import (
	"errors"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery retrieves where an order is in the two-hub pipeline,
// with contact details of both hubs and the distance between them.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }

// TrackedHub is a hub leg of the tracking view.
type TrackedHub struct {
	HubRef

	Phone     string
	Email     string
	Address   string
	Location  *kernel.GeoLocation
	ArrivedAt *time.Time
}

// GetOrderTrackingQueryResponse is the tracking projection. It carries whether
// a pickup code is active and until when, never the code.
type GetOrderTrackingQueryResponse struct {
	OrderID         kernel.UUID
	Number          string
	Status          order.Status
	CurrentLocation order.Location

	SellerHub *TrackedHub
	BuyerHub  *TrackedHub

	AdminApproved bool
	ApprovedAt    *time.Time
	DeliveredAt   *time.Time
	OTP           *OTPStatus

	// DistanceKm is the great-circle distance between the two hubs once both are known.
	DistanceKm *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
