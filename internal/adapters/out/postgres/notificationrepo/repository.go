package notificationrepo

import (
	"context"
	"errors"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddAll inserts the notifications, skipping any recipient that already has
// one for the same order transition, and returns how many rows were inserted.
func (r *GormNotificationRepository) AddAll(ctx context.Context, ns []*notification.Notification) (int, error) {
	if len(ns) == 0 {
		return 0, nil
	}

	dtos := make([]NotificationDTO, 0, len(ns))
	for _, n := range ns {
		if err := n.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, fromDomain(n))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// Update persists the read state, the only mutable part of a notification.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Updates(map[string]any{"is_read": n.IsRead(), "read_at": n.ReadAt()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

// MarkAllRead marks every unread notification of recipient read.
func (r *GormNotificationRepository) MarkAllRead(
	ctx context.Context,
	recipient notification.Recipient,
	now time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND recipient_role = ? AND is_read = ?", recipient.ID, string(recipient.Role), false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return result.RowsAffected, result.Error
}
