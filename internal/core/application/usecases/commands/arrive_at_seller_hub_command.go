package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrArriveAtSellerHubCommandIsNotConstructed = errors.New(
	"ArriveAtSellerHubCommand must be created via NewArriveAtSellerHubCommand constructor",
)

// ArriveAtSellerHubCommand records that the seller handed the parcel to the
// hub of the seller's district.
type ArriveAtSellerHubCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID string

	guard guard.ConstructorGuard
}

func NewArriveAtSellerHubCommand(orderID kernel.UUID, actorID string) (ArriveAtSellerHubCommand, error) {
	cmd := ArriveAtSellerHubCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return ArriveAtSellerHubCommand{}, err
	}

	return cmd, nil
}

func (c ArriveAtSellerHubCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtSellerHubCommandIsNotConstructed)
}

func (c ArriveAtSellerHubCommand) OrderID() kernel.UUID { return c.orderID }
func (c ArriveAtSellerHubCommand) ActorID() string      { return c.actorID }

func (c *ArriveAtSellerHubCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ArriveAtSellerHubCommand) setActorID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("actor id")
	}
	c.actorID = id
	return nil
}
