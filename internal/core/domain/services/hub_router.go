package services

import (
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/order"
)

// HubRouter selects the hub an order is routed to once its district is known.
//
// Business rules:
//   - Only an active hub serving exactly the resolved district qualifies
//   - Capacity is never considered; a full hub still receives orders
//   - When several active hubs qualify (a data error the store normally prevents)
//     the one with the lowest code wins, so routing stays deterministic
//   - No qualifying hub is a ResolutionError; there is no nearest-hub fallback
//
// Example:
//
//	res := resolver.Resolve(o.SellerAddress())
//	candidates, _ := hubs.ListActiveByDistrict(ctx, res.District)
//	ref, err := services.NewHubRouter().Route(res, hub.SellerParty, candidates)
type HubRouter struct{}

// NewHubRouter creates a HubRouter.
func NewHubRouter() HubRouter {
	return HubRouter{}
}

// Route picks the hub for res among candidates and returns the order's snapshot of it.
func (r HubRouter) Route(res Resolution, party hub.Party, candidates []*hub.Hub) (*hub.Hub, order.HubRef, error) {
	best, err := r.findHub(res, party, candidates)
	if err != nil {
		return nil, order.HubRef{}, err
	}

	return best, order.HubRef{
		ID:       best.ID(),
		Name:     best.Name(),
		District: best.District(),
		Fallback: res.Fallback,
	}, nil
}

func (r HubRouter) findHub(res Resolution, party hub.Party, candidates []*hub.Hub) (*hub.Hub, error) {
	var best *hub.Hub
	for _, h := range candidates {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if !h.IsActive() || h.District() != res.District {
			continue
		}
		if best == nil || h.Code() < best.Code() {
			best = h
		}
	}

	if best == nil {
		return nil, hub.NewResolutionError(res.District, party)
	}
	return best, nil
}
