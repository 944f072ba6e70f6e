package commands_test

import (
	"errors"
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func arrivalRunner(w orderUoW) commands.RunDueArrivalTasksCommandHandler {
	arrival := commands.NewArriveAtBuyerHubCommandHandler(w.factory, zeroOTPs(), clk)
	return commands.NewRunDueArrivalTasksCommandHandler(w.factory, arrival, 3, clk, logger)
}

func dueTask(t *testing.T, orderID kernel.UUID) *task.Task {
	t.Helper()
	tk, err := task.NewTask(kernel.NewUUID(), orderID, task.KindArriveAtBuyerHub, t0, t0)
	require.NoError(t, err)
	return tk
}

func TestRunDueArrivalTasksCommandHandler_Handle(t *testing.T) {
	sellerHub := newHub(t, "HUB-TSR-001", kernel.Thrissur, nil)
	buyerHub := newHub(t, "HUB-KLM-001", kernel.Kollam, nil)
	cmd, err := commands.NewRunDueArrivalTasksCommand(20)
	require.NoError(t, err)

	t.Run("a shipped order arrives as the system actor", func(t *testing.T) {
		ctx := t.Context()
		w := newOrderUoW()
		o := shipped(t, sellerHub, buyerHub)
		tk := dueTask(t, o.ID())

		w.tasks.On("ListDue", mock.Anything, task.KindArriveAtBuyerHub, now, 20).Return([]kernel.UUID{tk.ID()}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Once()
		w.tasks.On("Claim", mock.Anything, tk.ID()).Return(tk, nil).Once()
		w.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		w.orders.On("Update", mock.Anything, o).Return(nil).Once()
		w.hubs.On("RecordArrival", mock.Anything, buyerHub.ID()).Return(nil).Once()
		w.tasks.On("CancelPending", mock.Anything, o.ID(), task.KindArriveAtBuyerHub, "order arrived", now).Return(nil).Once()
		w.tasks.On("Update", mock.Anything, tk).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Once()

		result, err := arrivalRunner(w).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.TaskResult{Completed: 1}, result)
		assert.Equal(t, task.Done, tk.Status())
		assert.Equal(t, order.OutForDelivery, o.Status())
		require.Len(t, o.Events(), 1)
		assert.Equal(t, commands.SystemActor, o.Events()[0].Actor)
		w.assertExpectations(t)
	})

	t.Run("an order that moved on cancels the task", func(t *testing.T) {
		ctx := t.Context()
		w := newOrderUoW()
		o := outForDelivery(t, sellerHub, buyerHub, "123456")
		tk := dueTask(t, o.ID())

		w.tasks.On("ListDue", mock.Anything, task.KindArriveAtBuyerHub, now, 20).Return([]kernel.UUID{tk.ID()}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Twice()
		w.tasks.On("Claim", mock.Anything, tk.ID()).Return(tk, nil).Twice()
		w.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		w.tasks.On("Update", mock.Anything, tk).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Twice()

		result, err := arrivalRunner(w).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.TaskResult{Cancelled: 1}, result)
		assert.Equal(t, task.Cancelled, tk.Status())
		w.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("a store failure records an attempt", func(t *testing.T) {
		ctx := t.Context()
		w := newOrderUoW()
		o := shipped(t, sellerHub, buyerHub)
		tk := dueTask(t, o.ID())

		w.tasks.On("ListDue", mock.Anything, task.KindArriveAtBuyerHub, now, 20).Return([]kernel.UUID{tk.ID()}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Twice()
		w.tasks.On("Claim", mock.Anything, tk.ID()).Return(tk, nil).Twice()
		w.orders.On("Get", mock.Anything, o.ID()).Return(nil, errors.New("connection reset")).Once()
		w.tasks.On("Update", mock.Anything, tk).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Twice()

		result, err := arrivalRunner(w).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.TaskResult{Failed: 1}, result)
		assert.Equal(t, task.Pending, tk.Status())
		assert.Equal(t, 1, tk.Attempts())
		assert.Contains(t, tk.LastError(), "connection reset")
	})

	t.Run("a task claimed elsewhere is left alone", func(t *testing.T) {
		ctx := t.Context()
		w := newOrderUoW()
		id := kernel.NewUUID()

		w.tasks.On("ListDue", mock.Anything, task.KindArriveAtBuyerHub, now, 20).Return([]kernel.UUID{id}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Once()
		w.tasks.On("Claim", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("task", id)).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Once()

		result, err := arrivalRunner(w).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, result)
		w.assertExpectations(t)
	})
}
