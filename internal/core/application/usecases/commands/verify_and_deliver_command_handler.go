package commands

import (
	"context"
	"log/slog"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/clock"
)

// VerifyAndDeliverCommandHandler completes an order when the buyer presents the
// live pickup code. A rejected code returns an *order.OtpError and writes nothing;
// the buyer may try again.
//
// The caller's scope is checked before the code: a manager of another hub gets
// hub.ErrNotHubManager and another buyer gets order.ErrNotOrderBuyer.
type VerifyAndDeliverCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewVerifyAndDeliverCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock, logger *slog.Logger) VerifyAndDeliverCommandHandler {
	return VerifyAndDeliverCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "VerifyAndDeliver"),
	}
}

func (h VerifyAndDeliverCommandHandler) Handle(ctx context.Context, cmd VerifyAndDeliverCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "VerifyAndDeliver", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionVerifyAndDeliver, err)
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

func (h VerifyAndDeliverCommandHandler) handleOnce(ctx context.Context, cmd VerifyAndDeliverCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if cmd.BuyerID() != "" && o.Buyer().ID != cmd.BuyerID() {
		return nil, order.ErrNotOrderBuyer
	}
	if err = authorizeManager(ctx, uow.HubRepository(), o.Tracking().BuyerHub, cmd.ManagerID()); err != nil {
		return nil, err
	}

	if err = o.VerifyAndDeliver(cmd.Code(), cmd.ActorID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	buyerHub := o.Tracking().BuyerHub
	released, err := uow.HubRepository().RecordDelivery(ctx, buyerHub.ID)
	if err = settleRelease(ctx, h.logger, buyerHub, released, err); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
