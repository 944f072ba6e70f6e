// Package taskrepo persists scheduled tasks such as the buyer-hub arrival fallback.
package taskrepo

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO is the scheduled_tasks table.
type TaskDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(32);not null;index:ix_tasks_due,priority:1"`
	Status    string    `gorm:"type:varchar(16);not null;index:ix_tasks_due,priority:2"`
	DueAt     time.Time `gorm:"not null;index:ix_tasks_due,priority:3"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (TaskDTO) TableName() string {
	return "scheduled_tasks"
}

func fromDomain(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:        t.ID().Bytes(),
		OrderID:   t.OrderID().Bytes(),
		Kind:      string(t.Kind()),
		Status:    string(t.Status()),
		DueAt:     t.DueAt(),
		Attempts:  t.Attempts(),
		LastError: t.LastError(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	kind, err := task.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return task.RestoreTask(id, orderID, kind, dto.DueAt, status, dto.Attempts, dto.LastError, dto.CreatedAt, dto.UpdatedAt)
}
