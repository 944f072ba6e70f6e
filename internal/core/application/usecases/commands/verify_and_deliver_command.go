package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrVerifyAndDeliverCommandIsNotConstructed = errors.New(
	"VerifyAndDeliverCommand must be created via NewVerifyAndDeliverCommand constructor",
)

// VerifyAndDeliverCommand presents a pickup code at the buyer hub counter.
// A non-empty managerID limits it to orders held by that manager's hub, a
// non-empty buyerID to that buyer's orders. Admins pass neither.
type VerifyAndDeliverCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	code      string
	actorID   string
	managerID string
	buyerID   string

	guard guard.ConstructorGuard
}

// NewVerifyAndDeliverCommand only checks presence; the code's shape and value
// are judged by the order so every rejection comes back as an OtpError.
func NewVerifyAndDeliverCommand(orderID kernel.UUID, code, actorID, managerID, buyerID string) (VerifyAndDeliverCommand, error) {
	var errCode, errActor error
	if strings.TrimSpace(code) == "" {
		errCode = errs.NewValueIsRequiredError("otp")
	}
	if strings.TrimSpace(actorID) == "" {
		errActor = errs.NewValueIsRequiredError("actor id")
	}
	if err := errors.Join(orderID.Validate(), errCode, errActor); err != nil {
		return VerifyAndDeliverCommand{}, err
	}

	return VerifyAndDeliverCommand{
		orderID:   orderID,
		code:      strings.TrimSpace(code),
		actorID:   actorID,
		managerID: strings.TrimSpace(managerID),
		buyerID:   strings.TrimSpace(buyerID),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyAndDeliverCommand) Validate() error {
	return c.guard.Validate(ErrVerifyAndDeliverCommandIsNotConstructed)
}

func (c VerifyAndDeliverCommand) OrderID() kernel.UUID { return c.orderID }
func (c VerifyAndDeliverCommand) Code() string         { return c.code }
func (c VerifyAndDeliverCommand) ActorID() string      { return c.actorID }
func (c VerifyAndDeliverCommand) ManagerID() string    { return c.managerID }
func (c VerifyAndDeliverCommand) BuyerID() string      { return c.buyerID }
