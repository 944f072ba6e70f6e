package commands

import (
	"context"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/pkg/clock"
)

// AssignHubManagerCommandHandler replaces a hub's manager. Notifications
// already sent to the previous manager stay with them.
type AssignHubManagerCommandHandler struct {
	uowFactory HubUoWFactory
	clock      clock.Clock
}

func NewAssignHubManagerCommandHandler(uowFactory HubUoWFactory, clk clock.Clock) AssignHubManagerCommandHandler {
	return AssignHubManagerCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h AssignHubManagerCommandHandler) Handle(ctx context.Context, cmd AssignHubManagerCommand) (*hub.Hub, error) {
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

	if err = target.AssignManager(cmd.ManagerID(), cmd.ManagerName(), h.clock.Now()); err != nil {
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
