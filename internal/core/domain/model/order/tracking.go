package order

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
)

// Location tags where the parcel physically is.
type Location string

const (
	AtSeller            Location = "seller"
	AtSellerHubLocation Location = "seller_hub"
	InTransitToBuyerHub Location = "in_transit_to_buyer_hub"
	AtBuyerHubLocation  Location = "buyer_hub"
	DeliveredLocation   Location = "delivered"
	CancelledLocation   Location = "cancelled"
)

// HubRef is the snapshot of a hub stored on the order when it was assigned.
// Fallback is set when the district came from the default rather than the address.
type HubRef struct {
	ID       kernel.UUID
	Name     string
	District kernel.District
	Fallback bool
}

// HubTracking is the hub leg of an order: which hubs, when, and who approved.
type HubTracking struct {
	SellerHub            *HubRef
	ArrivedAtSellerHubAt *time.Time
	AdminApproved        bool
	ApprovedAt           *time.Time
	ApprovedBy           string
	BuyerHub             *HubRef
	ArrivedAtBuyerHubAt  *time.Time
	DeliveredAt          *time.Time
	CurrentLocation      Location
}

func (t HubTracking) clone() HubTracking {
	out := t
	out.SellerHub = cloneRef(t.SellerHub)
	out.BuyerHub = cloneRef(t.BuyerHub)
	out.ArrivedAtSellerHubAt = copyTime(t.ArrivedAtSellerHubAt)
	out.ApprovedAt = copyTime(t.ApprovedAt)
	out.ArrivedAtBuyerHubAt = copyTime(t.ArrivedAtBuyerHubAt)
	out.DeliveredAt = copyTime(t.DeliveredAt)
	return out
}

func cloneRef(r *HubRef) *HubRef {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
