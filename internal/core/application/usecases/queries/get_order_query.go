package queries

import (
	"errors"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its items, addresses and hub legs.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the full order view. The pickup code itself is
// never part of it; OTP only says whether one is active.
type GetOrderQueryResponse struct {
	OrderSummary

	BuyerEmail      string
	BuyerPhone      string
	ShippingAddress Address
	SellerAddress   Address
	Items           []order.LineItem
	Totals          order.Totals
	CancelReason    string
	Version         int
	OTP             *OTPStatus
}

// Address is a flat address view.
type Address struct {
	Street   string
	City     string
	State    string
	Pincode  string
	Landmark string
}
