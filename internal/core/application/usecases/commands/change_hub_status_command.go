package commands

import (
	"errors"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/guard"
)

var ErrChangeHubStatusCommandIsNotConstructed = errors.New(
	"ChangeHubStatusCommand must be created via NewChangeHubStatusCommand constructor",
)

// ChangeHubStatusCommand activates a hub or takes it out of service.
type ChangeHubStatusCommand struct { //nolint:recvcheck //using for validation
	hubID  kernel.UUID
	status hub.Status

	guard guard.ConstructorGuard
}

func NewChangeHubStatusCommand(hubID kernel.UUID, status hub.Status) (ChangeHubStatusCommand, error) {
	if err := errors.Join(hubID.Validate(), status.Validate()); err != nil {
		return ChangeHubStatusCommand{}, err
	}
	return ChangeHubStatusCommand{hubID: hubID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeHubStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeHubStatusCommandIsNotConstructed)
}

func (c ChangeHubStatusCommand) HubID() kernel.UUID { return c.hubID }
func (c ChangeHubStatusCommand) Status() hub.Status { return c.status }
