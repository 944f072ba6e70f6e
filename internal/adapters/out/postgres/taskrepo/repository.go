package taskrepo

import (
	"context"
	"errors"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Add(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	dto := fromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ?", t.ID().Bytes()).
		Updates(map[string]any{
			"status":     string(t.Status()),
			"attempts":   t.Attempts(),
			"last_error": t.LastError(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("task", t.ID().String())
	}
	return nil
}

// ListDue returns up to limit pending tasks of kind whose due time has passed.
func (r *GormTaskRepository) ListDue(ctx context.Context, kind task.Kind, now time.Time, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("kind = ? AND status = ? AND due_at <= ?", string(kind), string(task.Pending), now).
		Order("due_at").
		Limit(limit).
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

// Claim locks a pending task for the rest of the transaction. Tasks locked
// elsewhere or already settled are reported as not found.
func (r *GormTaskRepository) Claim(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	var dto TaskDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("id = ? AND status = ?", id.Bytes(), string(task.Pending)).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("task", id.String())
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// CancelPending cancels the order's pending tasks of kind.
func (r *GormTaskRepository) CancelPending(
	ctx context.Context,
	orderID kernel.UUID,
	kind task.Kind,
	reason string,
	now time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("order_id = ? AND kind = ? AND status = ?", orderID.Bytes(), string(kind), string(task.Pending)).
		Updates(map[string]any{
			"status":     string(task.Cancelled),
			"last_error": reason,
			"updated_at": now,
		}).Error
}
