package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/metrics"
	"hubflow/internal/pkg/clock"
	"hubflow/internal/pkg/errs"
)

// TaskResult summarizes one run of due tasks.
type TaskResult struct {
	Completed int
	Cancelled int
	Failed    int
}

// RunDueArrivalTasksCommandHandler replaces the in-process arrival timer with
// persisted tasks that survive restarts.
//
// Business rules:
//   - a due task runs the buyer-hub arrival as the system actor, in the same
//     transaction that marks the task done
//   - a StateError means the order moved on (a manager confirmed arrival, or
//     it was cancelled); the task is cancelled, not retried
//   - any other error counts an attempt; the task is parked after maxAttempts
type RunDueArrivalTasksCommandHandler struct {
	uowFactory  OrderUoWFactory
	arrival     ArriveAtBuyerHubCommandHandler
	maxAttempts int
	clock       clock.Clock
	logger      *slog.Logger
}

func NewRunDueArrivalTasksCommandHandler(
	uowFactory OrderUoWFactory,
	arrival ArriveAtBuyerHubCommandHandler,
	maxAttempts int,
	clk clock.Clock,
	logger *slog.Logger,
) RunDueArrivalTasksCommandHandler {
	return RunDueArrivalTasksCommandHandler{
		uowFactory:  uowFactory,
		arrival:     arrival,
		maxAttempts: maxAttempts,
		clock:       clk,
		logger:      logger.With("component", "ArrivalFallback"),
	}
}

func (h RunDueArrivalTasksCommandHandler) Handle(ctx context.Context, cmd RunDueArrivalTasksCommand) (TaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return TaskResult{}, err
	}

	ids, err := h.uowFactory.Create().TaskRepository().ListDue(ctx, task.KindArriveAtBuyerHub, h.clock.Now(), cmd.BatchSize())
	if err != nil {
		return TaskResult{}, err
	}

	var result TaskResult
	for _, id := range ids {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		err := h.runOne(ctx, id)
		var stateErr *order.StateError
		switch {
		case err == nil:
			result.Completed++
			metrics.ScheduledTasksTotal.WithLabelValues(string(task.KindArriveAtBuyerHub), "done").Inc()
		case errors.Is(err, errNotClaimed):
			// claimed by another runner or settled meanwhile
		case errors.As(err, &stateErr):
			result.Cancelled++
			if err = h.settle(ctx, id, func(t *task.Task, now time.Time) { t.Cancel(stateErr.Error(), now) }); err != nil {
				return result, err
			}
			metrics.ScheduledTasksTotal.WithLabelValues(string(task.KindArriveAtBuyerHub), "cancelled").Inc()
		default:
			result.Failed++
			cause := err
			if err = h.settle(ctx, id, func(t *task.Task, now time.Time) {
				if t.RecordFailure(cause, h.maxAttempts, now) {
					h.logger.ErrorContext(ctx, "giving up on arrival task", "task_id", t.ID(), "order_id", t.OrderID(), "error", cause)
				}
			}); err != nil {
				return result, err
			}
			h.logger.WarnContext(ctx, "arrival task failed", "task_id", id, "error", cause)
			metrics.ScheduledTasksTotal.WithLabelValues(string(task.KindArriveAtBuyerHub), "failed").Inc()
		}
	}

	return result, nil
}

func (h RunDueArrivalTasksCommandHandler) runOne(ctx context.Context, id kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tasks := uow.TaskRepository()
	t, err := tasks.Claim(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errNotClaimed
	}
	if err != nil {
		return err
	}

	cmd, err := NewArriveAtBuyerHubCommand(t.OrderID(), SystemActor, "")
	if err != nil {
		return err
	}

	o, err := h.arrival.apply(ctx, uow, cmd)
	observeTransition(order.TransitionArriveAtBuyerHub, err)
	if err != nil {
		return err
	}

	t.Complete(h.clock.Now())
	if err = tasks.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order arrived at buyer hub automatically", "order_number", o.Number(), "task_id", id)
	return nil
}

// settle applies change to a claimed task in its own transaction.
func (h RunDueArrivalTasksCommandHandler) settle(ctx context.Context, id kernel.UUID, change func(*task.Task, time.Time)) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tasks := uow.TaskRepository()
	t, err := tasks.Claim(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	change(t, h.clock.Now())
	if err = tasks.Update(ctx, t); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
