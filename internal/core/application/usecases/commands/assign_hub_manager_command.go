package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrAssignHubManagerCommandIsNotConstructed = errors.New(
	"AssignHubManagerCommand must be created via NewAssignHubManagerCommand constructor",
)

// AssignHubManagerCommand makes a user the manager of a hub.
type AssignHubManagerCommand struct { //nolint:recvcheck //using for validation
	hubID       kernel.UUID
	managerID   string
	managerName string

	guard guard.ConstructorGuard
}

func NewAssignHubManagerCommand(hubID kernel.UUID, managerID, managerName string) (AssignHubManagerCommand, error) {
	var errManager error
	if strings.TrimSpace(managerID) == "" {
		errManager = errs.NewValueIsRequiredError("manager id")
	}
	if err := errors.Join(hubID.Validate(), errManager); err != nil {
		return AssignHubManagerCommand{}, err
	}
	return AssignHubManagerCommand{
		hubID:       hubID,
		managerID:   strings.TrimSpace(managerID),
		managerName: strings.TrimSpace(managerName),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignHubManagerCommand) Validate() error {
	return c.guard.Validate(ErrAssignHubManagerCommandIsNotConstructed)
}

func (c AssignHubManagerCommand) HubID() kernel.UUID  { return c.hubID }
func (c AssignHubManagerCommand) ManagerID() string   { return c.managerID }
func (c AssignHubManagerCommand) ManagerName() string { return c.managerName }
