package queries

import (
	"context"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListHubOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListHubOrdersQueryHandler(db *gorm.DB) ListHubOrdersQueryHandler {
	return ListHubOrdersQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown hub and
// hub.ErrNotHubManager when a manager asks for a hub they do not run.
func (h ListHubOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListHubOrdersQuery,
) (ListHubOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListHubOrdersQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	hubID := query.HubID().Bytes()

	var hubs []struct{ ManagerID *string }
	if err := db.Raw(`SELECT manager_id FROM hubs WHERE id = ?`, hubID).Scan(&hubs).Error; err != nil {
		return ListHubOrdersQueryResponse{}, err
	}
	if len(hubs) == 0 {
		return ListHubOrdersQueryResponse{}, errs.NewObjectNotFoundError("hub", query.HubID().String())
	}
	if manager := hubs[0].ManagerID; query.ManagerID() != "" && (manager == nil || *manager != query.ManagerID()) {
		return ListHubOrdersQueryResponse{}, hub.ErrNotHubManager
	}

	list := func(hubColumn string, status order.Status, orderBy string) ([]OrderSummary, error) {
		var rows []orderSummaryRow
		if err := db.Raw(`
			SELECT `+orderSummaryColumns+`
			FROM orders o
			WHERE o.`+hubColumn+` = ? AND o.status = ?
			ORDER BY `+orderBy+`
			LIMIT ? OFFSET ?
		`, hubID, status.String(), query.Page().Limit, query.Page().Offset).Scan(&rows).Error; err != nil {
			return nil, err
		}
		return summaries(rows)
	}

	var (
		resp ListHubOrdersQueryResponse
		err  error
	)
	if resp.AwaitingApproval, err = list("seller_hub_id", order.AtSellerHub, "o.arrived_at_seller_hub_at"); err != nil {
		return ListHubOrdersQueryResponse{}, err
	}
	if resp.Inbound, err = list("buyer_hub_id", order.Shipped, "o.approved_at"); err != nil {
		return ListHubOrdersQueryResponse{}, err
	}
	if resp.ReadyForPickup, err = list("buyer_hub_id", order.OutForDelivery, "o.arrived_at_buyer_hub_at"); err != nil {
		return ListHubOrdersQueryResponse{}, err
	}
	return resp, nil
}
