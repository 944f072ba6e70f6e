package queries

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var (
	ErrListHubOrdersQueryIsNotConstructed = errors.New(
		"ListHubOrdersQuery must be created via NewListHubOrdersQuery constructor",
	)
)

// ListHubOrdersQuery feeds a hub manager's dashboard with the orders the hub
// is responsible for: parcels held for approval, parcels on their way in and
// parcels waiting for pickup.
//
// A non-empty managerID restricts the listing to the hub that user manages;
// admins pass an empty one.
type ListHubOrdersQuery struct { //nolint:recvcheck //using for validation
	hubID     kernel.UUID
	managerID string
	page      Page

	guard guard.ConstructorGuard
}

func NewListHubOrdersQuery(hubID kernel.UUID, managerID string, page Page) (ListHubOrdersQuery, error) {
	if err := hubID.Validate(); err != nil {
		return ListHubOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("hub id", err)
	}
	return ListHubOrdersQuery{
		hubID:     hubID,
		managerID: strings.TrimSpace(managerID),
		page:      page.normalized(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListHubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListHubOrdersQueryIsNotConstructed)
}

func (q ListHubOrdersQuery) HubID() kernel.UUID { return q.hubID }
func (q ListHubOrdersQuery) ManagerID() string  { return q.managerID }
func (q ListHubOrdersQuery) Page() Page         { return q.page }

// ListHubOrdersQueryResponse groups a hub's orders by what the hub has to do next.
type ListHubOrdersQueryResponse struct {
	AwaitingApproval []OrderSummary
	Inbound          []OrderSummary
	ReadyForPickup   []OrderSummary
}
