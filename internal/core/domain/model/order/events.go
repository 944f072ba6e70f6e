package order

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
)

// Event records one committed transition. The unit of work writes it to the
// outbox in the same transaction as the order; notifications are derived from it later.
type Event struct {
	ID          kernel.UUID
	Transition  Transition
	OrderID     kernel.UUID
	OrderNumber string
	Actor       string
	OccurredAt  time.Time
	Snapshot    EventSnapshot
}

// EventSnapshot carries what recipients and message templates need, so the relay
// only reloads the order to check that a pickup code is still live.
type EventSnapshot struct {
	PreviousStatus Status
	Status         Status

	BuyerID    string
	BuyerName  string
	BuyerEmail string
	SellerID   string

	SellerHub *HubRef
	BuyerHub  *HubRef

	FinalAmount int64
	ItemCount   int

	// OTPCode and OTPExpiresAt are set only for transitions that issue a code.
	// They feed the pickup email and are never copied into notifications.
	OTPCode      string
	OTPExpiresAt *time.Time

	CancelReason string
}

// HasOTP reports whether the event carries a freshly issued pickup code.
func (e Event) HasOTP() bool {
	return e.Snapshot.OTPCode != ""
}
