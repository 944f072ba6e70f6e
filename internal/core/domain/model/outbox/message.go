// Package outbox holds the durable record of committed order transitions that
// still have to be turned into notifications and pickup-code emails.
package outbox

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when a Message was not built by a constructor.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Status of an outbox message.
type Status string

const (
	Pending   Status = "pending"
	Processed Status = "processed"
	Failed    Status = "failed"
)

// ParseStatus converts a stored status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Processed, Failed:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("outbox status", fmt.Errorf("unknown status %q", s))
	}
}

// Message wraps one order event on its way to the relay. It is written in the
// same transaction as the order and is never deleted; processed and failed
// messages stay for audit.
type Message struct {
	event       order.Event
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	processedAt *time.Time

	isConstructed bool
}

// NewMessage creates a pending message for event.
func NewMessage(event order.Event, now time.Time) (*Message, error) {
	if err := errors.Join(event.ID.Validate(), event.OrderID.Validate()); err != nil {
		return nil, err
	}
	if event.Transition == "" {
		return nil, errs.NewValueIsRequiredError("transition")
	}
	return &Message{event: event, status: Pending, createdAt: now, isConstructed: true}, nil
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(
	event order.Event,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	processedAt *time.Time,
) (*Message, error) {
	m, err := NewMessage(event, createdAt)
	if err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, 1<<31-1)
	}
	m.status = status
	m.attempts = attempts
	m.lastError = lastError
	if processedAt != nil {
		v := *processedAt
		m.processedAt = &v
	}
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) Event() order.Event      { return m.event }
func (m *Message) Status() Status          { return m.status }
func (m *Message) Attempts() int           { return m.attempts }
func (m *Message) LastError() string       { return m.lastError }
func (m *Message) CreatedAt() time.Time    { return m.createdAt }
func (m *Message) ProcessedAt() *time.Time { return m.processedAt }

// IsPending reports whether the relay should still pick the message up.
func (m *Message) IsPending() bool {
	return m.status == Pending
}

// MarkProcessed records a successful relay.
func (m *Message) MarkProcessed(now time.Time) {
	m.status = Processed
	m.lastError = ""
	m.processedAt = &now
}

// RecordFailure counts a failed attempt. Once maxAttempts is reached the
// message is parked as Failed and the relay stops retrying it. The return
// value reports whether it was parked.
func (m *Message) RecordFailure(cause error, maxAttempts int) bool {
	m.attempts++
	m.lastError = truncate(cause.Error(), 1000)
	if maxAttempts > 0 && m.attempts >= maxAttempts {
		m.status = Failed
		return true
	}
	return false
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
