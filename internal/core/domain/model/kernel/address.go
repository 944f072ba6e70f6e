package kernel

import (
	"errors"
	"strings"

	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a postal address snapshot. Orders copy the buyer's shipping address
// and the seller's registered address at checkout; later profile edits do not
// reach the order.
type Address struct {
	street   string
	city     string
	state    string
	pincode  string
	landmark string
	guard    guard.ConstructorGuard
}

// NewAddress builds an Address. Street and city are mandatory; the district
// resolver needs at least one of them to carry a place name.
func NewAddress(street, city, state, pincode, landmark string) (Address, error) {
	a := Address{
		street:   strings.TrimSpace(street),
		city:     strings.TrimSpace(city),
		state:    strings.TrimSpace(state),
		pincode:  strings.TrimSpace(pincode),
		landmark: strings.TrimSpace(landmark),
		guard:    guard.NewConstructorGuard(),
	}

	var errStreet, errCity error
	if a.street == "" {
		errStreet = errs.NewValueIsRequiredError("street")
	}
	if a.city == "" {
		errCity = errs.NewValueIsRequiredError("city")
	}
	if err := errors.Join(errStreet, errCity); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Street() string   { return a.street }
func (a Address) City() string     { return a.city }
func (a Address) State() string    { return a.state }
func (a Address) Pincode() string  { return a.pincode }
func (a Address) Landmark() string { return a.landmark }

// Text is the street, city and state joined by spaces; the haystack searched
// for district names.
func (a Address) Text() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.street, a.city, a.state} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Validate returns ErrAddressIsNotConstructed for the zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) String() string {
	s := a.street + ", " + a.city
	if a.state != "" {
		s += ", " + a.state
	}
	if a.pincode != "" {
		s += " " + a.pincode
	}
	return s
}
