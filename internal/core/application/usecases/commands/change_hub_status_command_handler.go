package commands

import (
	"context"
	"fmt"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/ports"
	"hubflow/internal/pkg/clock"
)

// ChangeHubStatusCommandHandler changes a hub's operational status. Activating
// a hub in a district that already has an active hub is rejected. Orders
// already routed to a hub keep their reference when it is deactivated.
type ChangeHubStatusCommandHandler struct {
	uowFactory HubUoWFactory
	clock      clock.Clock
}

func NewChangeHubStatusCommandHandler(uowFactory HubUoWFactory, clk clock.Clock) ChangeHubStatusCommandHandler {
	return ChangeHubStatusCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h ChangeHubStatusCommandHandler) Handle(ctx context.Context, cmd ChangeHubStatusCommand) (*hub.Hub, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	hubs := uow.HubRepository()

	target, err := hubs.Get(ctx, cmd.HubID())
	if err != nil {
		return nil, err
	}

	if cmd.Status() == hub.Active && !target.IsActive() {
		if err = ensureDistrictFree(ctx, hubs, target); err != nil {
			return nil, err
		}
	}

	if err = target.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = hubs.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}

// ensureDistrictFree fails when another hub already serves h's district.
func ensureDistrictFree(ctx context.Context, hubs ports.HubRepository, h *hub.Hub) error {
	active, err := hubs.ListActiveByDistrict(ctx, h.District())
	if err != nil {
		return err
	}
	for _, other := range active {
		if !other.ID().IsEqual(h.ID()) {
			return fmt.Errorf("%w: %s is served by %s", hub.ErrDistrictAlreadyServed, h.District(), other.Code())
		}
	}
	return nil
}
