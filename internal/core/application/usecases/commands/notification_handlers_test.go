package commands_test

import (
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationUoW struct {
	uow     *MockUoW
	factory *MockNotificationUoWFactory
	repo    *MockNotificationRepository
}

func newNotificationUoW() notificationUoW {
	w := notificationUoW{uow: &MockUoW{}, factory: &MockNotificationUoWFactory{}, repo: &MockNotificationRepository{}}
	w.factory.On("Create").Return(w.uow)
	w.uow.On("NotificationRepository").Return(w.repo).Maybe()
	return w
}

func newNotification(t *testing.T, recipient notification.Recipient) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(kernel.NewUUID(), recipient, kernel.NewUUID(), "ORD1",
		order.TransitionArriveAtBuyerHub, notification.Content{Type: notification.TypeOrderReadyForPickup, Title: "Ready"}, t0)
	require.NoError(t, err)
	return n
}

func TestMarkNotificationReadCommandHandler_Handle(t *testing.T) {
	buyer := notification.Recipient{ID: "buyer-1", Role: notification.RoleBuyer}

	t.Run("marks the caller's notification", func(t *testing.T) {
		ctx := t.Context()
		w := newNotificationUoW()
		n := newNotification(t, buyer)

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.repo.On("Get", ctx, n.ID()).Return(n, nil).Once()
		w.repo.On("Update", ctx, n).Return(nil).Once()
		w.uow.On("Commit", ctx).Return(nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewMarkNotificationReadCommand(n.ID(), buyer)
		require.NoError(t, err)

		got, err := commands.NewMarkNotificationReadCommandHandler(w.factory, clk).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, got.IsRead())
		require.NotNil(t, got.ReadAt())
		assert.Equal(t, now, *got.ReadAt())
		w.repo.AssertExpectations(t)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		ctx := t.Context()
		w := newNotificationUoW()
		n := newNotification(t, notification.Recipient{ID: "buyer-2", Role: notification.RoleBuyer})

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.repo.On("Get", ctx, n.ID()).Return(n, nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		cmd, _ := commands.NewMarkNotificationReadCommand(n.ID(), buyer)
		_, err := commands.NewMarkNotificationReadCommandHandler(w.factory, clk).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.False(t, n.IsRead())
		w.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestMarkAllNotificationsReadCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	w := newNotificationUoW()
	admin := notification.Recipient{ID: "admin-1", Role: notification.RoleAdmin}

	w.uow.On("Begin", ctx).Return(nil).Once()
	w.repo.On("MarkAllRead", ctx, admin, now).Return(int64(4), nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()
	w.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewMarkAllNotificationsReadCommand(admin)
	require.NoError(t, err)

	changed, err := commands.NewMarkAllNotificationsReadCommandHandler(w.factory, clk).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(4), changed)
}

func TestNewMarkAllNotificationsReadCommand_RejectsUnknownRole(t *testing.T) {
	_, err := commands.NewMarkAllNotificationsReadCommand(notification.Recipient{ID: "x", Role: "driver"})
	require.Error(t, err)
}
