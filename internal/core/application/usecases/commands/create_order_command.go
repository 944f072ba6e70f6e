package commands

import (
	"errors"
	"slices"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one line item is required")
)

// CreateOrderCommand hands a checked-out cart to fulfillment.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com"},
//	    shippingAddress,
//	    "seller-9", sellerAddress,
//	    []order.LineItem{{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000}},
//	    5000,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyer           order.Buyer
	shippingAddress kernel.Address
	sellerID        string
	sellerAddress   kernel.Address
	items           []order.LineItem
	shippingFee     int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout payload.
func NewCreateOrderCommand(
	buyer order.Buyer,
	shippingAddress kernel.Address,
	sellerID string,
	sellerAddress kernel.Address,
	items []order.LineItem,
	shippingFee int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyer(buyer),
		cmd.setShippingAddress(shippingAddress),
		cmd.setSeller(sellerID, sellerAddress),
		cmd.setItems(items),
		cmd.setShippingFee(shippingFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Buyer() order.Buyer              { return c.buyer }
func (c CreateOrderCommand) ShippingAddress() kernel.Address { return c.shippingAddress }
func (c CreateOrderCommand) SellerID() string                { return c.sellerID }
func (c CreateOrderCommand) SellerAddress() kernel.Address   { return c.sellerAddress }
func (c CreateOrderCommand) Items() []order.LineItem         { return slices.Clone(c.items) }
func (c CreateOrderCommand) ShippingFee() int64              { return c.shippingFee }

func (c *CreateOrderCommand) setBuyer(buyer order.Buyer) error {
	if strings.TrimSpace(buyer.ID) == "" {
		return errs.NewValueIsRequiredError("buyer id")
	}
	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.shippingAddress = a
	return nil
}

func (c *CreateOrderCommand) setSeller(id string, a kernel.Address) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("seller id")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	c.sellerID = id
	c.sellerAddress = a
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setShippingFee(fee int64) error {
	if fee < 0 {
		return errs.NewValueIsOutOfRangeError("shipping fee", fee, 0, "unbounded")
	}
	c.shippingFee = fee
	return nil
}
