package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrResendOTPCommandIsNotConstructed = errors.New(
	"ResendOTPCommand must be created via NewResendOTPCommand constructor",
)

// ResendOTPCommand replaces a waiting order's pickup code and emails the new one.
type ResendOTPCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   string
	managerID string

	guard guard.ConstructorGuard
}

func NewResendOTPCommand(orderID kernel.UUID, actorID, managerID string) (ResendOTPCommand, error) {
	var errActor error
	if strings.TrimSpace(actorID) == "" {
		errActor = errs.NewValueIsRequiredError("actor id")
	}
	if err := errors.Join(orderID.Validate(), errActor); err != nil {
		return ResendOTPCommand{}, err
	}

	return ResendOTPCommand{
		orderID:   orderID,
		actorID:   actorID,
		managerID: strings.TrimSpace(managerID),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ResendOTPCommand) Validate() error {
	return c.guard.Validate(ErrResendOTPCommandIsNotConstructed)
}

func (c ResendOTPCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResendOTPCommand) ActorID() string      { return c.actorID }
func (c ResendOTPCommand) ManagerID() string    { return c.managerID }
