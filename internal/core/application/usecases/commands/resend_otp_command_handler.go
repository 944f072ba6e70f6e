package commands

import (
	"context"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/pkg/clock"
)

// ResendOTPCommandHandler issues a fresh pickup code. The previous code stops
// working as soon as the transaction commits.
type ResendOTPCommandHandler struct {
	uowFactory OrderUoWFactory
	otps       services.OTPGenerator
	clock      clock.Clock
}

func NewResendOTPCommandHandler(uowFactory OrderUoWFactory, otps services.OTPGenerator, clk clock.Clock) ResendOTPCommandHandler {
	return ResendOTPCommandHandler{
		uowFactory: uowFactory,
		otps:       otps,
		clock:      clk,
	}
}

func (h ResendOTPCommandHandler) Handle(ctx context.Context, cmd ResendOTPCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "ResendOTP", cmd.OrderID())
	defer func() {
		observeTransition(order.TransitionResendOTP, err)
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

func (h ResendOTPCommandHandler) handleOnce(ctx context.Context, cmd ResendOTPCommand) (*order.Order, error) {
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
	if !o.Status().CanApply(order.TransitionResendOTP) {
		return nil, order.NewStateError(o.ID(), o.Status(), order.TransitionResendOTP)
	}

	if err = authorizeManager(ctx, uow.HubRepository(), o.Tracking().BuyerHub, cmd.ManagerID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	otp, err := h.otps.Issue(now)
	if err != nil {
		return nil, err
	}

	if err = o.ReissueOTP(otp, cmd.ActorID(), now); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
