package commands

import (
	"context"
	"log/slog"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/pkg/clock"
)

// ArriveAtSellerHubCommandHandler routes a new order to the active hub of the
// seller's district and takes one slot there.
//
// Business rules:
//   - the order must be Created and not yet placed at a hub
//   - the district comes from the seller's registered address; an unmatched
//     address falls back to the default district and is logged
//   - no active hub in the district is a hub.ResolutionError, nothing is written
//   - every admin is asked for approval through the outbox
type ArriveAtSellerHubCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.DistrictResolver
	clock      clock.Clock
	logger     *slog.Logger
}

func NewArriveAtSellerHubCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.DistrictResolver,
	clk clock.Clock,
	logger *slog.Logger,
) ArriveAtSellerHubCommandHandler {
	return ArriveAtSellerHubCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		clock:      clk,
		logger:     logger.With("component", "ArriveAtSellerHub"),
	}
}

// Handle applies the transition and returns the updated order.
func (h ArriveAtSellerHubCommandHandler) Handle(ctx context.Context, cmd ArriveAtSellerHubCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "ArriveAtSellerHub", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionArriveAtSellerHub, err)
		endSpan(span, err)
	}()

	err = retryOnConflict(ctx, func(ctx context.Context) error {
		o, err = h.handleOnce(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (h ArriveAtSellerHubCommandHandler) handleOnce(ctx context.Context, cmd ArriveAtSellerHubCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	hubs := uow.HubRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.Status().CanApply(order.TransitionArriveAtSellerHub) {
		return nil, order.NewStateError(o.ID(), o.Status(), order.TransitionArriveAtSellerHub)
	}

	ref, err := routeTo(ctx, h.logger, hubs, h.resolver, o, hub.SellerParty, o.SellerAddress())
	if err != nil {
		return nil, err
	}

	if err = o.ArriveAtSellerHub(ref, cmd.ActorID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = hubs.RecordArrival(ctx, ref.ID); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
