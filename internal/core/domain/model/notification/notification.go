package notification

import (
	"errors"
	"maps"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned for a Notification not built by a constructor.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Recipient identifies who a notification is for.
type Recipient struct {
	ID   string
	Role Role
}

// Content is the rendered part of a notification.
type Content struct {
	Type           Type
	Title          string
	Message        string
	ActionRequired bool
	ActionType     ActionType
	Metadata       map[string]any
}

// Notification is a message about one order transition for one recipient.
type Notification struct {
	id          kernel.UUID
	recipient   Recipient
	orderID     kernel.UUID
	orderNumber string
	transition  order.Transition
	content     Content
	read        bool
	readAt      *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewNotification creates an unread notification.
func NewNotification(
	id kernel.UUID,
	recipient Recipient,
	orderID kernel.UUID,
	orderNumber string,
	transition order.Transition,
	content Content,
	now time.Time,
) (*Notification, error) {
	var errRecipient, errTitle error
	if strings.TrimSpace(recipient.ID) == "" {
		errRecipient = errs.NewValueIsRequiredError("recipient id")
	}
	if strings.TrimSpace(content.Title) == "" {
		errTitle = errs.NewValueIsRequiredError("title")
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipient.Role.Validate(),
		errRecipient,
		errTitle,
	); err != nil {
		return nil, err
	}
	if content.ActionType == "" {
		content.ActionType = ActionNone
	}
	content.Metadata = maps.Clone(content.Metadata)

	return &Notification{
		id:            id,
		recipient:     recipient,
		orderID:       orderID,
		orderNumber:   orderNumber,
		transition:    transition,
		content:       content,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification rebuilds a stored notification with its read state.
func RestoreNotification(
	id kernel.UUID,
	recipient Recipient,
	orderID kernel.UUID,
	orderNumber string,
	transition order.Transition,
	content Content,
	read bool,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipient, orderID, orderNumber, transition, content, createdAt)
	if err != nil {
		return nil, err
	}
	n.read = read
	if readAt != nil {
		v := *readAt
		n.readAt = &v
	}
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID              { return n.id }
func (n *Notification) Recipient() Recipient         { return n.recipient }
func (n *Notification) OrderID() kernel.UUID         { return n.orderID }
func (n *Notification) OrderNumber() string          { return n.orderNumber }
func (n *Notification) Transition() order.Transition { return n.transition }
func (n *Notification) IsRead() bool                 { return n.read }
func (n *Notification) CreatedAt() time.Time         { return n.createdAt }

// Content returns the rendered content with a copy of the metadata.
func (n *Notification) Content() Content {
	c := n.content
	c.Metadata = maps.Clone(n.content.Metadata)
	return c
}

func (n *Notification) ReadAt() *time.Time {
	if n.readAt == nil {
		return nil
	}
	v := *n.readAt
	return &v
}

// MarkRead sets the read flag. Marking an already read notification keeps the first read time.
func (n *Notification) MarkRead(now time.Time) {
	if n.read {
		return
	}
	n.read = true
	n.readAt = &now
}

// IsFor reports whether the notification belongs to recipient.
func (n *Notification) IsFor(recipient Recipient) bool {
	return n.recipient == recipient
}
