package commands

import (
	"context"
	"log/slog"
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/pkg/clock"
)

// ApproveAndDispatchCommandHandler ships an approved order towards the buyer hub.
//
// Business rules:
//   - the order must be exactly AtSellerHub; a second approval is a StateError
//   - two concurrent approvals race on the order version; the loser reloads,
//     finds the order Shipped and fails with a StateError
//   - the buyer district comes from the shipping address
//   - the seller hub gives back its slot and counts one dispatched order
//   - with a positive arrival fallback delay, an arrival task is scheduled in
//     the same transaction
//
// Example:
//
//	cmd, _ := NewApproveAndDispatchCommand(orderID, "admin-1")
//	o, err := handler.Handle(ctx, cmd)
//	var stateErr *order.StateError
//	if errors.As(err, &stateErr) {
//	    // already approved or cancelled
//	}
type ApproveAndDispatchCommandHandler struct {
	uowFactory    OrderUoWFactory
	resolver      services.DistrictResolver
	fallbackAfter time.Duration
	clock         clock.Clock
	logger        *slog.Logger
}

// NewApproveAndDispatchCommandHandler creates the handler. fallbackAfter of
// zero disables the automatic buyer-hub arrival.
func NewApproveAndDispatchCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.DistrictResolver,
	fallbackAfter time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) ApproveAndDispatchCommandHandler {
	return ApproveAndDispatchCommandHandler{
		uowFactory:    uowFactory,
		resolver:      resolver,
		fallbackAfter: fallbackAfter,
		clock:         clk,
		logger:        logger.With("component", "ApproveAndDispatch"),
	}
}

func (h ApproveAndDispatchCommandHandler) Handle(ctx context.Context, cmd ApproveAndDispatchCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "ApproveAndDispatch", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionApproveAndDispatch, err)
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

func (h ApproveAndDispatchCommandHandler) handleOnce(ctx context.Context, cmd ApproveAndDispatchCommand) (*order.Order, error) {
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
	if !o.Status().CanApply(order.TransitionApproveAndDispatch) {
		return nil, order.NewStateError(o.ID(), o.Status(), order.TransitionApproveAndDispatch)
	}

	ref, err := routeTo(ctx, h.logger, hubs, h.resolver, o, hub.BuyerParty, o.ShippingAddress())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.ApproveAndDispatch(cmd.ApproverID(), ref, now); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	sellerHub := o.Tracking().SellerHub
	released, err := hubs.RecordDispatch(ctx, sellerHub.ID)
	if err = settleRelease(ctx, h.logger, sellerHub, released, err); err != nil {
		return nil, err
	}

	if h.fallbackAfter > 0 {
		t, err := task.NewTask(kernel.NewUUID(), o.ID(), task.KindArriveAtBuyerHub, now.Add(h.fallbackAfter), now)
		if err != nil {
			return nil, err
		}
		if err = uow.TaskRepository().Add(ctx, t); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
