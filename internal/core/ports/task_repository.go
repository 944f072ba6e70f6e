package ports

import (
	"context"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/task"
)

// TaskRepository stores scheduled tasks.
type TaskRepository interface {
	Add(ctx context.Context, t *task.Task) error

	Update(ctx context.Context, t *task.Task) error

	// ListDue returns up to limit ids of pending tasks of kind due at or before now.
	ListDue(ctx context.Context, kind task.Kind, now time.Time, limit int) ([]kernel.UUID, error)

	// Claim loads a pending task and locks it for the current transaction.
	Claim(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// CancelPending cancels every pending task of kind for orderID.
	CancelPending(ctx context.Context, orderID kernel.UUID, kind task.Kind, reason string, now time.Time) error
}
