package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrArriveAtBuyerHubCommandIsNotConstructed = errors.New(
	"ArriveAtBuyerHubCommand must be created via NewArriveAtBuyerHubCommand constructor",
)

// SystemActor is recorded as the actor of transitions run by background jobs.
const SystemActor = "system"

// ArriveAtBuyerHubCommand records the parcel reaching the buyer's district hub.
// When managerID is set, it must be the manager of that hub.
type ArriveAtBuyerHubCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   string
	managerID string

	guard guard.ConstructorGuard
}

// NewArriveAtBuyerHubCommand creates the command. Pass an empty managerID for
// admins and automation.
func NewArriveAtBuyerHubCommand(orderID kernel.UUID, actorID, managerID string) (ArriveAtBuyerHubCommand, error) {
	cmd := ArriveAtBuyerHubCommand{
		managerID: strings.TrimSpace(managerID),
		guard:     guard.NewConstructorGuard(),
	}

	var errActor error
	if strings.TrimSpace(actorID) == "" {
		errActor = errs.NewValueIsRequiredError("actor id")
	}
	if err := errors.Join(orderID.Validate(), errActor); err != nil {
		return ArriveAtBuyerHubCommand{}, err
	}
	cmd.orderID = orderID
	cmd.actorID = actorID

	return cmd, nil
}

func (c ArriveAtBuyerHubCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtBuyerHubCommandIsNotConstructed)
}

func (c ArriveAtBuyerHubCommand) OrderID() kernel.UUID { return c.orderID }
func (c ArriveAtBuyerHubCommand) ActorID() string      { return c.actorID }
func (c ArriveAtBuyerHubCommand) ManagerID() string    { return c.managerID }
