// Package notificationrepo persists in-app notifications. A recipient gets at
// most one notification per order transition; re-inserting one is a no-op.
package notificationrepo

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDTO is the notifications table.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID    string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_notifications_transition,priority:1;index:ix_notifications_inbox,priority:1"`
	RecipientRole  string    `gorm:"type:varchar(16);not null;uniqueIndex:ux_notifications_transition,priority:2;index:ix_notifications_inbox,priority:2"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_notifications_transition,priority:3"`
	Transition     string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_notifications_transition,priority:4"`
	OrderNumber    string    `gorm:"type:varchar(32);not null"`
	Type           string    `gorm:"type:varchar(64);not null"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:text"`
	IsRead         bool      `gorm:"not null;default:false"`
	ReadAt         *time.Time
	ActionRequired bool              `gorm:"not null;default:false"`
	ActionType     string            `gorm:"type:varchar(32);not null"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"not null;index:ix_notifications_inbox,priority:3;autoCreateTime:false"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	c := n.Content()
	var meta datatypes.JSONMap
	if len(c.Metadata) > 0 {
		meta = datatypes.JSONMap(c.Metadata)
	}
	return NotificationDTO{
		ID:             n.ID().Bytes(),
		RecipientID:    n.Recipient().ID,
		RecipientRole:  string(n.Recipient().Role),
		OrderID:        n.OrderID().Bytes(),
		Transition:     n.Transition().String(),
		OrderNumber:    n.OrderNumber(),
		Type:           string(c.Type),
		Title:          c.Title,
		Message:        c.Message,
		IsRead:         n.IsRead(),
		ReadAt:         n.ReadAt(),
		ActionRequired: c.ActionRequired,
		ActionType:     string(c.ActionType),
		Metadata:       meta,
		CreatedAt:      n.CreatedAt(),
	}
}

// ToDomain rebuilds a notification from its row.
func ToDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	role, err := notification.ParseRole(dto.RecipientRole)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		notification.Recipient{ID: dto.RecipientID, Role: role},
		orderID,
		dto.OrderNumber,
		order.Transition(dto.Transition),
		notification.Content{
			Type:           notification.Type(dto.Type),
			Title:          dto.Title,
			Message:        dto.Message,
			ActionRequired: dto.ActionRequired,
			ActionType:     notification.ActionType(dto.ActionType),
			Metadata:       dto.Metadata,
		},
		dto.IsRead,
		dto.ReadAt,
		dto.CreatedAt,
	)
}
