package commands

import (
	"errors"

	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrProcessOutboxCommandIsNotConstructed = errors.New(
	"ProcessOutboxCommand must be created via NewProcessOutboxCommand constructor",
)

// ProcessOutboxCommand asks the relay to work through one batch of pending
// transition events.
type ProcessOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewProcessOutboxCommand(batchSize int) (ProcessOutboxCommand, error) {
	if batchSize <= 0 {
		return ProcessOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, 1000)
	}
	return ProcessOutboxCommand{batchSize: min(batchSize, 1000), guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessOutboxCommand) Validate() error {
	return c.guard.Validate(ErrProcessOutboxCommandIsNotConstructed)
}

func (c ProcessOutboxCommand) BatchSize() int { return c.batchSize }
