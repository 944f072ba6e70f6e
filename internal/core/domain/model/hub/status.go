package hub

import (
	"fmt"

	"hubflow/internal/pkg/errs"
)

// Status is the operational state of a hub. Only active hubs receive orders.
type Status string

const (
	Active      Status = "active"
	Inactive    Status = "inactive"
	Maintenance Status = "maintenance"
)

// ParseStatus converts the stored or requested representation to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values outside active, inactive and maintenance.
func (s Status) Validate() error {
	switch s {
	case Active, Inactive, Maintenance:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("hub status", fmt.Errorf("%q is not a valid hub status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}
