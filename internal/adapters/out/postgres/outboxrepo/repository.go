package outboxrepo

import (
	"context"
	"errors"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/outbox"
	"hubflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add appends messages; the unit of work calls it right before commit.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListPending returns up to limit pending message ids, oldest first.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("status = ?", string(outbox.Pending)).
		Order("created_at").
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

// Claim locks a pending message for the rest of the transaction. A message that
// is locked by another relay or no longer pending is reported as not found.
func (r *GormOutboxRepository) Claim(ctx context.Context, id kernel.UUID) (*outbox.Message, error) {
	var dto MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("id = ? AND status = ?", id.Bytes(), string(outbox.Pending)).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("outbox message", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Update stores the delivery state of a message. Once it is processed the
// pickup code is dropped from the payload.
func (r *GormOutboxRepository) Update(ctx context.Context, m *outbox.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	updates := map[string]any{
		"status":       string(m.Status()),
		"attempts":     m.Attempts(),
		"last_error":   m.LastError(),
		"processed_at": m.ProcessedAt(),
	}
	if m.Status() == outbox.Processed {
		updates["payload"] = gorm.Expr("payload - 'otpCode'")
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", m.Event().ID.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", m.Event().ID.String())
	}
	return nil
}
