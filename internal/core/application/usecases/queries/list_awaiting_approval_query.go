package queries

import (
	"errors"

	"hubflow/internal/pkg/guard"
)

var (
	ErrListAwaitingApprovalQueryIsNotConstructed = errors.New(
		"ListAwaitingApprovalQuery must be created via NewListAwaitingApprovalQuery constructor",
	)
)

// ListAwaitingApprovalQuery feeds the admin dashboard: orders sitting at a
// seller hub, oldest arrival first.
type ListAwaitingApprovalQuery struct { //nolint:recvcheck //using for validation
	page Page

	guard guard.ConstructorGuard
}

func NewListAwaitingApprovalQuery(page Page) ListAwaitingApprovalQuery {
	return ListAwaitingApprovalQuery{page: page.normalized(), guard: guard.NewConstructorGuard()}
}

func (q ListAwaitingApprovalQuery) Validate() error {
	return q.guard.Validate(ErrListAwaitingApprovalQueryIsNotConstructed)
}

func (q ListAwaitingApprovalQuery) Page() Page { return q.page }

// ListAwaitingApprovalQueryResponse is one page of orders and the total waiting.
type ListAwaitingApprovalQueryResponse struct {
	Orders []OrderSummary
	Total  int64
}
