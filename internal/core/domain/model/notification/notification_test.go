package notification_test

import (
	"testing"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewNotification(t *testing.T) {
	t.Run("starts unread with a default action", func(t *testing.T) {
		meta := map[string]any{"hubName": "Kannur Central Hub"}
		n, err := notification.NewNotification(
			kernel.NewUUID(),
			notification.Recipient{ID: "admin-1", Role: notification.RoleAdmin},
			kernel.NewUUID(),
			"ORD1",
			order.TransitionArriveAtSellerHub,
			notification.Content{Type: notification.TypeAdminApprovalRequired, Title: "Approval required", Metadata: meta},
			now,
		)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.False(t, n.IsRead())
		assert.Nil(t, n.ReadAt())
		assert.Equal(t, notification.ActionNone, n.Content().ActionType)

		meta["hubName"] = "changed"
		assert.Equal(t, "Kannur Central Hub", n.Content().Metadata["hubName"])
	})

	t.Run("validates recipient and title", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(),
			notification.Recipient{ID: "", Role: "driver"},
			kernel.NewUUID(), "ORD1", order.TransitionCancel,
			notification.Content{}, now,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "recipient role")
		assert.Contains(t, err.Error(), "title")
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := notification.NewNotification(
		kernel.NewUUID(),
		notification.Recipient{ID: "buyer-1", Role: notification.RoleBuyer},
		kernel.NewUUID(), "ORD1", order.TransitionVerifyAndDeliver,
		notification.Content{Type: notification.TypeOrderDelivered, Title: "Delivered"},
		now,
	)
	require.NoError(t, err)

	n.MarkRead(now.Add(time.Minute))
	n.MarkRead(now.Add(time.Hour))

	assert.True(t, n.IsRead())
	assert.Equal(t, now.Add(time.Minute), *n.ReadAt())
	assert.True(t, n.IsFor(notification.Recipient{ID: "buyer-1", Role: notification.RoleBuyer}))
	assert.False(t, n.IsFor(notification.Recipient{ID: "buyer-1", Role: notification.RoleSeller}))
}

func TestParseRole(t *testing.T) {
	r, err := notification.ParseRole("hubmanager")
	require.NoError(t, err)
	assert.Equal(t, notification.RoleHubManager, r)

	_, err = notification.ParseRole("driver")
	require.Error(t, err)
}
