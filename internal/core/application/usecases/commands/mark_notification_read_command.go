package commands

import (
	"errors"
	"strings"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var (
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
		"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
	)
)

// MarkNotificationReadCommand marks one of the caller's notifications read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	recipient      notification.Recipient

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(
	notificationID kernel.UUID,
	recipient notification.Recipient,
) (MarkNotificationReadCommand, error) {
	if err := errors.Join(notificationID.Validate(), validateRecipient(recipient)); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{
		notificationID: notificationID,
		recipient:      recipient,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID       { return c.notificationID }
func (c MarkNotificationReadCommand) Recipient() notification.Recipient { return c.recipient }

// MarkAllNotificationsReadCommand marks every unread notification of the caller read.
type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	recipient notification.Recipient

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(recipient notification.Recipient) (MarkAllNotificationsReadCommand, error) {
	if err := validateRecipient(recipient); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}
	return MarkAllNotificationsReadCommand{recipient: recipient, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) Recipient() notification.Recipient { return c.recipient }

func validateRecipient(r notification.Recipient) error {
	var errID error
	if strings.TrimSpace(r.ID) == "" {
		errID = errs.NewValueIsRequiredError("recipient id")
	}
	return errors.Join(errID, r.Role.Validate())
}
