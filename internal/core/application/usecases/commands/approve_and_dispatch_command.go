package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrApproveAndDispatchCommandIsNotConstructed = errors.New(
	"ApproveAndDispatchCommand must be created via NewApproveAndDispatchCommand constructor",
)

// ApproveAndDispatchCommand is an admin's approval to ship an order from the
// seller hub to the buyer's district hub.
type ApproveAndDispatchCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approverID string

	guard guard.ConstructorGuard
}

func NewApproveAndDispatchCommand(orderID kernel.UUID, approverID string) (ApproveAndDispatchCommand, error) {
	cmd := ApproveAndDispatchCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setApproverID(approverID),
	); err != nil {
		return ApproveAndDispatchCommand{}, err
	}

	return cmd, nil
}

func (c ApproveAndDispatchCommand) Validate() error {
	return c.guard.Validate(ErrApproveAndDispatchCommandIsNotConstructed)
}

func (c ApproveAndDispatchCommand) OrderID() kernel.UUID { return c.orderID }
func (c ApproveAndDispatchCommand) ApproverID() string   { return c.approverID }

func (c *ApproveAndDispatchCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ApproveAndDispatchCommand) setApproverID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("approver id")
	}
	c.approverID = strings.TrimSpace(id)
	return nil
}
