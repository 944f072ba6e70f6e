package commands

import (
	"context"

	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/pkg/clock"
	"hubflow/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a single notification read. A
// notification addressed to someone else is reported as not found.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      clock.Clock
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory, clk clock.Clock) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()

	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}
	if !n.IsFor(cmd.Recipient()) {
		return nil, errs.NewObjectNotFoundError("notification", cmd.NotificationID())
	}

	if n.IsRead() {
		return n, nil
	}

	n.MarkRead(h.clock.Now())
	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}

// MarkAllNotificationsReadCommandHandler marks all of a recipient's
// notifications read and returns how many changed.
type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      clock.Clock
}

func NewMarkAllNotificationsReadCommandHandler(
	uowFactory NotificationUoWFactory,
	clk clock.Clock,
) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.Recipient(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}
