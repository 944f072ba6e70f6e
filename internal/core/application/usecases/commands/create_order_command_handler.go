package commands

import (
	"context"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/pkg/clock"
)

// CreateOrderCommandHandler registers a new order in Created status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.System{})
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o.Number() is the ORD number shown to the buyer
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	numbers    services.OrderNumberGenerator
	clock      clock.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    services.NewOrderNumberGenerator(),
		clock:      clk,
	}
}

// Handle creates and persists the order. The create event reaches the seller
// through the outbox on commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	id := kernel.NewUUID()
	ctx, span := startSpan(ctx, "CreateOrder", id)
	defer func() {
		observeTransition(order.TransitionCreate, err)
		endSpan(span, err)
	}()

	now := h.clock.Now()
	number, err := h.numbers.Next(now)
	if err != nil {
		return nil, err
	}

	o, err = order.NewOrder(
		id, number, cmd.Buyer(), cmd.ShippingAddress(), cmd.SellerID(), cmd.SellerAddress(),
		cmd.Items(), cmd.ShippingFee(), now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

