package queries

import (
	"context"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

type notificationRow struct {
	ID             uuid.UUID
	Type           string
	Title          string
	Message        string
	OrderID        uuid.UUID
	OrderNumber    string
	Transition     string
	IsRead         bool
	ReadAt         *time.Time
	ActionRequired bool
	ActionType     string
	Metadata       datatypes.JSONMap
	CreatedAt      time.Time
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	recipient := query.Recipient()
	// Each call starts a fresh statement; a counted chain cannot be reused for Scan.
	inbox := func(unreadOnly bool) *gorm.DB {
		q := h.db.WithContext(ctx).
			Table("notifications").
			Where("recipient_id = ? AND recipient_role = ?", recipient.ID, string(recipient.Role))
		if unreadOnly {
			q = q.Where("is_read = ?", false)
		}
		return q
	}

	var unread int64
	if err := inbox(true).Count(&unread).Error; err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	total := unread
	if !query.UnreadOnly() {
		if err := inbox(false).Count(&total).Error; err != nil {
			return ListNotificationsQueryResponse{}, err
		}
	}

	var rows []notificationRow
	if err := inbox(query.UnreadOnly()).
		Select("id, type, title, message, order_id, order_number, transition, is_read, read_at, " +
			"action_required, action_type, metadata, created_at").
		Order("created_at DESC, id").
		Limit(query.Page().Limit).
		Offset(query.Page().Offset).
		Scan(&rows).Error; err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	views := make([]NotificationView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListNotificationsQueryResponse{}, err
		}
		orderID, err := kernel.UUIDFromBytes(row.OrderID[:])
		if err != nil {
			return ListNotificationsQueryResponse{}, err
		}
		views = append(views, NotificationView{
			ID:             id,
			Type:           notification.Type(row.Type),
			Title:          row.Title,
			Message:        row.Message,
			OrderID:        orderID,
			OrderNumber:    row.OrderNumber,
			Transition:     order.Transition(row.Transition),
			IsRead:         row.IsRead,
			ReadAt:         row.ReadAt,
			ActionRequired: row.ActionRequired,
			ActionType:     notification.ActionType(row.ActionType),
			Metadata:       row.Metadata,
			CreatedAt:      row.CreatedAt,
		})
	}

	return ListNotificationsQueryResponse{
		Notifications: views,
		Total:         total,
		UnreadCount:   unread,
		Page:          query.Page(),
	}, nil
}

type GetUnreadCountQueryHandler struct {
	db *gorm.DB
}

func NewGetUnreadCountQueryHandler(db *gorm.DB) GetUnreadCountQueryHandler {
	return GetUnreadCountQueryHandler{db: db}
}

func (h GetUnreadCountQueryHandler) Handle(ctx context.Context, query GetUnreadCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).
		Table("notifications").
		Where("recipient_id = ? AND recipient_role = ? AND is_read = ?",
			query.Recipient().ID, string(query.Recipient().Role), false).
		Count(&count).Error
	return count, err
}
