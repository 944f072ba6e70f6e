package ports

import (
	"context"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// AddAll inserts notifications, silently skipping any whose
	// (recipient, role, order, transition) already exists, and returns how many were new.
	AddAll(ctx context.Context, ns []*notification.Notification) (int, error)

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists the read flag; no other field is mutable.
	Update(ctx context.Context, n *notification.Notification) error

	// MarkAllRead marks every unread notification of recipient as read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, recipient notification.Recipient, now time.Time) (int64, error)
}
