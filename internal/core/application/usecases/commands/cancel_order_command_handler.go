package commands

import (
	"context"
	"log/slog"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/clock"
)

// CancelOrderCommandHandler cancels a Created or AtSellerHub order and gives
// the seller hub its slot back when the parcel was already there.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "CancelOrder"),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "CancelOrder", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionCancel, err)
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

func (h CancelOrderCommandHandler) handleOnce(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	released, err := o.Cancel(cmd.ActorID(), cmd.Reason(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if released != nil {
		ok, err := uow.HubRepository().ReleaseSlot(ctx, released.ID)
		if err = settleRelease(ctx, h.logger, released, ok, err); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
