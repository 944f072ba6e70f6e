package commands

import (
	"context"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/pkg/clock"
)

// ArriveAtBuyerHubCommandHandler records arrival at the buyer hub and issues the
// pickup code. The code itself only leaves through the outbox email; the
// buyer's notification never carries it.
type ArriveAtBuyerHubCommandHandler struct {
	uowFactory OrderUoWFactory
	otps       services.OTPGenerator
	clock      clock.Clock
}

func NewArriveAtBuyerHubCommandHandler(
	uowFactory OrderUoWFactory,
	otps services.OTPGenerator,
	clk clock.Clock,
) ArriveAtBuyerHubCommandHandler {
	return ArriveAtBuyerHubCommandHandler{
		uowFactory: uowFactory,
		otps:       otps,
		clock:      clk,
	}
}

func (h ArriveAtBuyerHubCommandHandler) Handle(ctx context.Context, cmd ArriveAtBuyerHubCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "ArriveAtBuyerHub", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionArriveAtBuyerHub, err)
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

func (h ArriveAtBuyerHubCommandHandler) handleOnce(ctx context.Context, cmd ArriveAtBuyerHubCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.apply(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// apply runs the transition inside an open unit of work. The arrival fallback
// job reuses it so the task settles in the same transaction.
func (h ArriveAtBuyerHubCommandHandler) apply(ctx context.Context, uow OrderUoW, cmd ArriveAtBuyerHubCommand) (*order.Order, error) {
	orders := uow.OrderRepository()
	hubs := uow.HubRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.Status().CanApply(order.TransitionArriveAtBuyerHub) {
		return nil, order.NewStateError(o.ID(), o.Status(), order.TransitionArriveAtBuyerHub)
	}

	buyerHub := o.Tracking().BuyerHub
	if err = authorizeManager(ctx, hubs, buyerHub, cmd.ManagerID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	otp, err := h.otps.Issue(now)
	if err != nil {
		return nil, err
	}

	if err = o.ArriveAtBuyerHub(otp, cmd.ActorID(), now); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = hubs.RecordArrival(ctx, buyerHub.ID); err != nil {
		return nil, err
	}

	if err = uow.TaskRepository().CancelPending(ctx, o.ID(), task.KindArriveAtBuyerHub, "order arrived", now); err != nil {
		return nil, err
	}

	return o, nil
}
