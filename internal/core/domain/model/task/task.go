// Package task models delayed work that must survive a restart, such as the
// automatic buyer-hub arrival after dispatch.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"
)

var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// Kind names what a task does when it comes due.
type Kind string

const (
	KindArriveAtBuyerHub Kind = "arrive_buyer_hub"
)

// Status of a scheduled task.
type Status string

const (
	Pending   Status = "pending"
	Done      Status = "done"
	Cancelled Status = "cancelled"
	Failed    Status = "failed"
)

func ParseKind(s string) (Kind, error) {
	if Kind(s) == KindArriveAtBuyerHub {
		return KindArriveAtBuyerHub, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("task kind", fmt.Errorf("unknown kind %q", s))
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Done, Cancelled, Failed:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("unknown status %q", s))
	}
}

// Task is a persisted unit of deferred work bound to one order.
type Task struct {
	id        kernel.UUID
	orderID   kernel.UUID
	kind      Kind
	dueAt     time.Time
	status    Status
	attempts  int
	lastError string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTask schedules kind for orderID at dueAt.
func NewTask(id, orderID kernel.UUID, kind Kind, dueAt, now time.Time) (*Task, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if dueAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("due at")
	}
	return &Task{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		dueAt:         dueAt,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreTask rebuilds a stored task.
func RestoreTask(
	id, orderID kernel.UUID,
	kind Kind,
	dueAt time.Time,
	status Status,
	attempts int,
	lastError string,
	createdAt, updatedAt time.Time,
) (*Task, error) {
	t, err := NewTask(id, orderID, kind, dueAt, createdAt)
	if err != nil {
		return nil, err
	}
	if _, err = ParseStatus(string(status)); err != nil {
		return nil, err
	}
	t.status = status
	t.attempts = attempts
	t.lastError = lastError
	t.updatedAt = updatedAt
	return t, nil
}

func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

func (t *Task) ID() kernel.UUID      { return t.id }
func (t *Task) OrderID() kernel.UUID { return t.orderID }
func (t *Task) Kind() Kind           { return t.kind }
func (t *Task) DueAt() time.Time     { return t.dueAt }
func (t *Task) Status() Status       { return t.status }
func (t *Task) Attempts() int        { return t.attempts }
func (t *Task) LastError() string    { return t.lastError }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// IsDue reports whether a pending task should run at now.
func (t *Task) IsDue(now time.Time) bool {
	return t.status == Pending && !now.Before(t.dueAt)
}

// Complete marks the task done.
func (t *Task) Complete(now time.Time) {
	t.status = Done
	t.lastError = ""
	t.updatedAt = now
}

// Cancel marks the task obsolete, e.g. because the order already moved on.
func (t *Task) Cancel(reason string, now time.Time) {
	t.status = Cancelled
	t.lastError = strings.TrimSpace(reason)
	t.updatedAt = now
}

// RecordFailure counts a failed run and parks the task once maxAttempts is reached.
func (t *Task) RecordFailure(cause error, maxAttempts int, now time.Time) bool {
	t.attempts++
	t.lastError = cause.Error()
	t.updatedAt = now
	if maxAttempts > 0 && t.attempts >= maxAttempts {
		t.status = Failed
		return true
	}
	return false
}
