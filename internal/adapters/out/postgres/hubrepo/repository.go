package hubrepo

import (
	"context"
	"errors"
	"fmt"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormHubRepository implements HubRepository using GORM.
type GormHubRepository struct {
	db *gorm.DB
}

func NewGormHubRepository(db *gorm.DB) *GormHubRepository {
	return &GormHubRepository{db: db}
}

// Add saves a new hub. Losing a race for a district's active slot is reported
// as hub.ErrDistrictAlreadyServed.
func (r *GormHubRepository) Add(ctx context.Context, h *hub.Hub) error {
	if err := h.Validate(); err != nil {
		return err
	}

	dto := fromDomain(h)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, h)
	}
	return nil
}

// Update writes the fields the aggregate owns: status, manager, contact and
// operating hours. Counters are left to the atomic statements below.
func (r *GormHubRepository) Update(ctx context.Context, h *hub.Hub) error {
	if err := h.Validate(); err != nil {
		return err
	}

	dto := fromDomain(h)
	result := r.db.WithContext(ctx).
		Model(&HubDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "status", "manager_id", "manager_name", "contact_phone", "contact_email",
			"open_time", "close_time", "working_days", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, h)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("hub", h.ID().String())
	}
	return nil
}

// Get retrieves a hub by ID.
func (r *GormHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ListActiveByDistrict returns the active hubs of a district; with the partial
// unique index in place there is at most one.
func (r *GormHubRepository) ListActiveByDistrict(ctx context.Context, district kernel.District) ([]*hub.Hub, error) {
	var dtos []HubDTO
	if err := r.db.WithContext(ctx).
		Where("district = ? AND status = ?", district.String(), hub.Active.String()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	hubs := make([]*hub.Hub, 0, len(dtos))
	for _, dto := range dtos {
		h, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		hubs = append(hubs, h)
	}
	return hubs, nil
}

// RecordArrival takes one slot: an order entered the hub.
func (r *GormHubRepository) RecordArrival(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&HubDTO{}).
		Where("id = ?", id.Bytes()).
		Update("current_orders", gorm.Expr("current_orders + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("hub", id.String())
	}
	return nil
}

// RecordDispatch frees the slot of an order that left for the buyer hub and
// counts the dispatch. It reports false when there was no slot to free; the
// dispatch is counted anyway.
func (r *GormHubRepository) RecordDispatch(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.release(ctx, id, "orders_dispatched")
}

// RecordDelivery frees the slot of a collected order and counts it as processed.
func (r *GormHubRepository) RecordDelivery(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.release(ctx, id, "total_orders_processed")
}

// ReleaseSlot frees a slot without touching the stats, e.g. on cancellation.
func (r *GormHubRepository) ReleaseSlot(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.release(ctx, id, "")
}

func (r *GormHubRepository) release(ctx context.Context, id kernel.UUID, stat string) (bool, error) {
	updates := map[string]any{"current_orders": gorm.Expr("current_orders - 1")}
	if stat != "" {
		updates[stat] = gorm.Expr(stat + " + 1")
	}

	result := r.db.WithContext(ctx).
		Model(&HubDTO{}).
		Where("id = ? AND current_orders > 0", id.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	// Nothing to release. Count the stat on its own so the totals stay right.
	q := r.db.WithContext(ctx).Model(&HubDTO{}).Where("id = ?", id.Bytes())
	if stat != "" {
		result = q.Update(stat, gorm.Expr(stat+" + 1"))
	} else {
		var n int64
		result = q.Count(&n)
		result.RowsAffected = n
	}
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, errs.NewObjectNotFoundError("hub", id.String())
	}
	return false, nil
}

func translate(err error, h *hub.Hub) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == ActiveDistrictIndex {
		return fmt.Errorf("%w: %s", hub.ErrDistrictAlreadyServed, h.District())
	}
	return err
}
