package commands

import (
	"errors"

	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var ErrRunDueArrivalTasksCommandIsNotConstructed = errors.New(
	"RunDueArrivalTasksCommand must be created via NewRunDueArrivalTasksCommand constructor",
)

// RunDueArrivalTasksCommand runs the automatic buyer-hub arrivals that are due.
type RunDueArrivalTasksCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRunDueArrivalTasksCommand(batchSize int) (RunDueArrivalTasksCommand, error) {
	if batchSize <= 0 {
		return RunDueArrivalTasksCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, 1000)
	}
	return RunDueArrivalTasksCommand{batchSize: min(batchSize, 1000), guard: guard.NewConstructorGuard()}, nil
}

func (c RunDueArrivalTasksCommand) Validate() error {
	return c.guard.Validate(ErrRunDueArrivalTasksCommandIsNotConstructed)
}

func (c RunDueArrivalTasksCommand) BatchSize() int { return c.batchSize }
