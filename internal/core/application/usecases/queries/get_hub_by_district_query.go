package queries

import (
	"errors"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/guard"
)

var (
	ErrGetHubByDistrictQueryIsNotConstructed = errors.New(
		"GetHubByDistrictQuery must be created via NewGetHubByDistrictQuery constructor",
	)
)

// GetHubByDistrictQuery finds the active hub serving a district.
type GetHubByDistrictQuery struct { //nolint:recvcheck //using for validation
	district kernel.District

	guard guard.ConstructorGuard
}

func NewGetHubByDistrictQuery(district kernel.District) (GetHubByDistrictQuery, error) {
	if err := district.Validate(); err != nil {
		return GetHubByDistrictQuery{}, err
	}
	return GetHubByDistrictQuery{district: district, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHubByDistrictQuery) Validate() error {
	return q.guard.Validate(ErrGetHubByDistrictQueryIsNotConstructed)
}

func (q GetHubByDistrictQuery) District() kernel.District { return q.district }
