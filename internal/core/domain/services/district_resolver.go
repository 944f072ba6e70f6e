package services

import (
	"strings"

	"hubflow/internal/core/domain/model/kernel"
)

// Resolution is the outcome of resolving an address. Fallback is true when no
// district name appeared in the address and the default district was used.
type Resolution struct {
	District kernel.District
	Fallback bool
}

// DistrictResolver maps free-text addresses to districts by looking for a
// district name inside the street, city and state, case-insensitively. Districts
// are tried in canonical order, so the first listed district wins when an
// address mentions two.
//
// City names that are not district names ("Kochi", "Calicut") do not match and
// fall back to the default district. The Fallback flag lets callers surface that.
type DistrictResolver struct {
	fallback kernel.District
}

// NewDistrictResolver creates a resolver that falls back to fallback.
func NewDistrictResolver(fallback kernel.District) (DistrictResolver, error) {
	if err := fallback.Validate(); err != nil {
		return DistrictResolver{}, err
	}
	return DistrictResolver{fallback: fallback}, nil
}

// Fallback returns the configured default district.
func (r DistrictResolver) Fallback() kernel.District {
	return r.fallback
}

// Resolve returns the district named in address, or the fallback.
func (r DistrictResolver) Resolve(address kernel.Address) Resolution {
	haystack := strings.ToLower(address.Text())
	for _, d := range kernel.AllDistricts() {
		if strings.Contains(haystack, strings.ToLower(d.String())) {
			return Resolution{District: d}
		}
	}
	return Resolution{District: r.fallback, Fallback: true}
}
