package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand ends an order before it leaves the seller hub.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actorID, reason string) (CancelOrderCommand, error) {
	var errActor error
	if strings.TrimSpace(actorID) == "" {
		errActor = errs.NewValueIsRequiredError("actor id")
	}
	if err := errors.Join(orderID.Validate(), errActor); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		actorID: actorID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) ActorID() string      { return c.actorID }
func (c CancelOrderCommand) Reason() string       { return c.reason }
