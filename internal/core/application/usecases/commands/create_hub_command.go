package commands

import (
	"errors"
	"fmt"
	"strings"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrCreateHubCommandIsNotConstructed = errors.New(
	"CreateHubCommand must be created via NewCreateHubCommand constructor",
)

// CreateHubCommand registers a hub for a district. It is also what the hub
// seed file is turned into, one command per entry.
type CreateHubCommand struct { //nolint:recvcheck //using for validation
	code      string
	name      string
	district  kernel.District
	address   kernel.Address
	location  kernel.GeoLocation
	contact   hub.Contact
	maxOrders int
	hours     hub.OperatingHours
	status    hub.Status
	manager   *hub.Manager

	guard guard.ConstructorGuard
}

// NewCreateHubCommand validates the hub description. manager may be nil.
func NewCreateHubCommand(
	code, name string,
	district kernel.District,
	address kernel.Address,
	location kernel.GeoLocation,
	contact hub.Contact,
	maxOrders int,
	hours hub.OperatingHours,
	status hub.Status,
	manager *hub.Manager,
) (CreateHubCommand, error) {
	var errCode, errName, errMax error
	if strings.TrimSpace(code) == "" {
		errCode = errs.NewValueIsRequiredError("code")
	}
	if strings.TrimSpace(name) == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if maxOrders <= 0 {
		errMax = errs.NewValueIsInvalidErrorWithCause("max orders", fmt.Errorf("%d is not greater than 0", maxOrders))
	}
	if err := errors.Join(
		errCode,
		errName,
		district.Validate(),
		address.Validate(),
		location.Validate(),
		errMax,
		status.Validate(),
	); err != nil {
		return CreateHubCommand{}, err
	}

	cmd := CreateHubCommand{
		code:      strings.TrimSpace(code),
		name:      strings.TrimSpace(name),
		district:  district,
		address:   address,
		location:  location,
		contact:   contact,
		maxOrders: maxOrders,
		hours:     hours,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}
	if manager != nil && strings.TrimSpace(manager.ID) != "" {
		m := *manager
		cmd.manager = &m
	}
	return cmd, nil
}

func (c CreateHubCommand) Validate() error {
	return c.guard.Validate(ErrCreateHubCommandIsNotConstructed)
}

func (c CreateHubCommand) Code() string                 { return c.code }
func (c CreateHubCommand) Name() string                 { return c.name }
func (c CreateHubCommand) District() kernel.District    { return c.district }
func (c CreateHubCommand) Address() kernel.Address      { return c.address }
func (c CreateHubCommand) Location() kernel.GeoLocation { return c.location }
func (c CreateHubCommand) Contact() hub.Contact         { return c.contact }
func (c CreateHubCommand) MaxOrders() int               { return c.maxOrders }
func (c CreateHubCommand) Hours() hub.OperatingHours    { return c.hours }
func (c CreateHubCommand) Status() hub.Status           { return c.status }
func (c CreateHubCommand) Manager() *hub.Manager        { return c.manager }
