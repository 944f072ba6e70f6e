package commands

import (
	"context"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/clock"
)

// CreateHubCommandHandler adds a hub to the directory.
//
// Business rules:
//   - at most one active hub per district; creating a second active one fails
//     with hub.ErrDistrictAlreadyServed (the store's partial unique index
//     backs this up under concurrency)
//   - inactive and maintenance hubs may share a district
type CreateHubCommandHandler struct {
	uowFactory HubUoWFactory
	clock      clock.Clock
}

func NewCreateHubCommandHandler(uowFactory HubUoWFactory, clk clock.Clock) CreateHubCommandHandler {
	return CreateHubCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h CreateHubCommandHandler) Handle(ctx context.Context, cmd CreateHubCommand) (*hub.Hub, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	created, err := hub.NewHub(
		kernel.NewUUID(), cmd.Code(), cmd.Name(), cmd.District(), cmd.Address(), cmd.Location(),
		cmd.Contact(), cmd.MaxOrders(), cmd.Hours(), cmd.Status(), now,
	)
	if err != nil {
		return nil, err
	}
	if m := cmd.Manager(); m != nil {
		if err = created.AssignManager(m.ID, m.Name, now); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	hubs := uow.HubRepository()

	if created.IsActive() {
		if err = ensureDistrictFree(ctx, hubs, created); err != nil {
			return nil, err
		}
	}

	if err = hubs.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
