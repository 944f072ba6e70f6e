package queries

import (
	"errors"
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/guard"
)

var (
	ErrListHubsQueryIsNotConstructed = errors.New(
		"ListHubsQuery must be created via NewListHubsQuery constructor",
	)
)

// ListHubsQuery lists the hub directory, optionally narrowed to a district
// and/or a status, ordered by hub code.
//
// Example:
//
//	district := kernel.Kollam
//	query, _ := NewListHubsQuery(&district, nil)
//	hubs, err := NewListHubsQueryHandler(db).Handle(ctx, query)
type ListHubsQuery struct { //nolint:recvcheck //using for validation
	district *kernel.District
	status   *hub.Status

	guard guard.ConstructorGuard
}

func NewListHubsQuery(district *kernel.District, status *hub.Status) (ListHubsQuery, error) {
	var errDistrict, errStatus error
	if district != nil {
		errDistrict = district.Validate()
	}
	if status != nil {
		errStatus = status.Validate()
	}
	if err := errors.Join(errDistrict, errStatus); err != nil {
		return ListHubsQuery{}, err
	}
	return ListHubsQuery{district: district, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListHubsQuery) Validate() error {
	return q.guard.Validate(ErrListHubsQueryIsNotConstructed)
}

func (q ListHubsQuery) District() *kernel.District { return q.district }
func (q ListHubsQuery) Status() *hub.Status        { return q.status }

// HubView is the directory entry of a hub.
type HubView struct {
	ID       kernel.UUID
	Code     string
	Name     string
	District kernel.District
	Address  Address
	Location kernel.GeoLocation
	Phone    string
	Email    string
	Manager  *hub.Manager
	Status   hub.Status

	MaxOrders            int
	CurrentOrders        int
	Utilization          float64
	TotalOrdersProcessed int
	OrdersDispatched     int

	OpenTime    string
	CloseTime   string
	WorkingDays []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
