package outbox_test

import (
	"errors"
	"testing"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func event() order.Event {
	return order.Event{
		ID:          kernel.NewUUID(),
		Transition:  order.TransitionArriveAtSellerHub,
		OrderID:     kernel.NewUUID(),
		OrderNumber: "ORD1",
		OccurredAt:  now,
	}
}

func TestNewMessage(t *testing.T) {
	m, err := outbox.NewMessage(event(), now)
	require.NoError(t, err)
	assert.True(t, m.IsPending())
	assert.Zero(t, m.Attempts())

	_, err = outbox.NewMessage(order.Event{}, now)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestMessage_RecordFailure(t *testing.T) {
	m, _ := outbox.NewMessage(event(), now)

	assert.False(t, m.RecordFailure(errors.New("smtp down"), 3))
	assert.False(t, m.RecordFailure(errors.New("smtp down"), 3))
	assert.True(t, m.IsPending())

	assert.True(t, m.RecordFailure(errors.New("smtp down"), 3))
	assert.Equal(t, outbox.Failed, m.Status())
	assert.Equal(t, 3, m.Attempts())
	assert.Equal(t, "smtp down", m.LastError())
}

func TestMessage_MarkProcessed(t *testing.T) {
	m, _ := outbox.NewMessage(event(), now)
	m.RecordFailure(errors.New("transient"), 5)

	m.MarkProcessed(now.Add(time.Second))

	assert.Equal(t, outbox.Processed, m.Status())
	assert.Empty(t, m.LastError())
	require.NotNil(t, m.ProcessedAt())
	assert.Equal(t, now.Add(time.Second), *m.ProcessedAt())
}

func TestParseStatus(t *testing.T) {
	s, err := outbox.ParseStatus("failed")
	require.NoError(t, err)
	assert.Equal(t, outbox.Failed, s)

	_, err = outbox.ParseStatus("done")
	require.Error(t, err)
}
