package ports

import (
	"context"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/outbox"
)

// OutboxRepository stores transition events awaiting the relay.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...*outbox.Message) error

	// ListPending returns up to limit pending event ids, oldest first.
	ListPending(ctx context.Context, limit int) ([]kernel.UUID, error)

	// Claim loads a pending message and locks it for the current transaction.
	// A message already locked by another relay or no longer pending yields
	// errs.ErrObjectNotFound.
	Claim(ctx context.Context, id kernel.UUID) (*outbox.Message, error)

	// Update persists status, attempts and last error.
	Update(ctx context.Context, m *outbox.Message) error
}
