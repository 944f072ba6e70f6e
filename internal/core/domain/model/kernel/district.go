package kernel

import (
	"fmt"
	"strings"

	"hubflow/internal/pkg/errs"
)

// District is one of the fourteen administrative districts of Kerala.
// Every hub serves exactly one district and every address resolves to one.
type District string

const (
	Thiruvananthapuram District = "Thiruvananthapuram"
	Kollam             District = "Kollam"
	Pathanamthitta     District = "Pathanamthitta"
	Alappuzha          District = "Alappuzha"
	Kottayam           District = "Kottayam"
	Idukki             District = "Idukki"
	Ernakulam          District = "Ernakulam"
	Thrissur           District = "Thrissur"
	Palakkad           District = "Palakkad"
	Malappuram         District = "Malappuram"
	Kozhikode          District = "Kozhikode"
	Wayanad            District = "Wayanad"
	Kannur             District = "Kannur"
	Kasaragod          District = "Kasaragod"
)

// allDistricts is the canonical order. Address resolution walks it front to back,
// so the order doubles as the tie-break when an address names two districts.
var allDistricts = [...]District{
	Thiruvananthapuram,
	Kollam,
	Pathanamthitta,
	Alappuzha,
	Kottayam,
	Idukki,
	Ernakulam,
	Thrissur,
	Palakkad,
	Malappuram,
	Kozhikode,
	Wayanad,
	Kannur,
	Kasaragod,
}

// AllDistricts returns the districts in canonical order.
func AllDistricts() []District {
	out := make([]District, len(allDistricts))
	copy(out, allDistricts[:])
	return out
}

// ParseDistrict matches a district name case-insensitively, ignoring surrounding spaces.
func ParseDistrict(s string) (District, error) {
	name := strings.TrimSpace(s)
	for _, d := range allDistricts {
		if strings.EqualFold(string(d), name) {
			return d, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("district", fmt.Errorf("%q is not a Kerala district", s))
}

// Validate rejects anything outside the closed enumeration.
func (d District) Validate() error {
	for _, known := range allDistricts {
		if d == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("district", fmt.Errorf("%q is not a Kerala district", string(d)))
}

func (d District) String() string {
	return string(d)
}
