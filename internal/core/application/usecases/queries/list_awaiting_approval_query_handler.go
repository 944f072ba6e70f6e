package queries

import (
	"context"

	"hubflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListAwaitingApprovalQueryHandler struct {
	db *gorm.DB
}

func NewListAwaitingApprovalQueryHandler(db *gorm.DB) ListAwaitingApprovalQueryHandler {
	return ListAwaitingApprovalQueryHandler{db: db}
}

func (h ListAwaitingApprovalQueryHandler) Handle(
	ctx context.Context,
	query ListAwaitingApprovalQuery,
) (ListAwaitingApprovalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAwaitingApprovalQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	status := order.AtSellerHub.String()

	var total int64
	if err := db.Raw(`SELECT count(*) FROM orders WHERE status = ?`, status).Scan(&total).Error; err != nil {
		return ListAwaitingApprovalQueryResponse{}, err
	}

	var rows []orderSummaryRow
	if err := db.Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders o
		WHERE o.status = ?
		ORDER BY o.arrived_at_seller_hub_at, o.number
		LIMIT ? OFFSET ?
	`, status, query.Page().Limit, query.Page().Offset).Scan(&rows).Error; err != nil {
		return ListAwaitingApprovalQueryResponse{}, err
	}

	orders, err := summaries(rows)
	if err != nil {
		return ListAwaitingApprovalQueryResponse{}, err
	}
	return ListAwaitingApprovalQueryResponse{Orders: orders, Total: total}, nil
}
