package queries

import (
	"errors"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"
	"hubflow/internal/pkg/guard"
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
	ErrGetUnreadCountQueryIsNotConstructed = errors.New(
		"GetUnreadCountQuery must be created via NewGetUnreadCountQuery constructor",
	)
)

// ListNotificationsQuery pages through a recipient's inbox, newest first.
//
// Example:
//
//	recipient := notification.Recipient{ID: "admin-1", Role: notification.RoleAdmin}
//	query, err := NewListNotificationsQuery(recipient, true, Page{Limit: 20})
//	inbox, err := NewListNotificationsQueryHandler(db).Handle(ctx, query)
//	fmt.Printf("%d unread\n", inbox.UnreadCount)
type ListNotificationsQuery struct { //nolint:recvcheck //using for validation
	recipient  notification.Recipient
	unreadOnly bool
	page       Page

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(
	recipient notification.Recipient,
	unreadOnly bool,
	page Page,
) (ListNotificationsQuery, error) {
	if err := validateRecipient(recipient); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{
		recipient:  recipient,
		unreadOnly: unreadOnly,
		page:       page.normalized(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) Recipient() notification.Recipient { return q.recipient }
func (q ListNotificationsQuery) UnreadOnly() bool                  { return q.unreadOnly }
func (q ListNotificationsQuery) Page() Page                        { return q.page }

// NotificationView is one inbox entry.
type NotificationView struct {
	ID             kernel.UUID
	Type           notification.Type
	Title          string
	Message        string
	OrderID        kernel.UUID
	OrderNumber    string
	Transition     order.Transition
	IsRead         bool
	ReadAt         *time.Time
	ActionRequired bool
	ActionType     notification.ActionType
	Metadata       map[string]any
	CreatedAt      time.Time
}

// ListNotificationsQueryResponse is one page of the inbox. Total counts the
// entries matching the filter; UnreadCount counts every unread entry.
type ListNotificationsQueryResponse struct {
	Notifications []NotificationView
	Total         int64
	UnreadCount   int64
	Page          Page
}

// GetUnreadCountQuery counts a recipient's unread notifications.
type GetUnreadCountQuery struct { //nolint:recvcheck //using for validation
	recipient notification.Recipient

	guard guard.ConstructorGuard
}

func NewGetUnreadCountQuery(recipient notification.Recipient) (GetUnreadCountQuery, error) {
	if err := validateRecipient(recipient); err != nil {
		return GetUnreadCountQuery{}, err
	}
	return GetUnreadCountQuery{recipient: recipient, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadCountQueryIsNotConstructed)
}

func (q GetUnreadCountQuery) Recipient() notification.Recipient { return q.recipient }

func validateRecipient(r notification.Recipient) error {
	var errID error
	if strings.TrimSpace(r.ID) == "" {
		errID = errs.NewValueIsRequiredError("recipient id")
	}
	return errors.Join(errID, r.Role.Validate())
}
