package order_test

import (
	"testing"

	"hubflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanApply(t *testing.T) {
	allowed := map[order.Status][]order.Transition{
		order.Created:        {order.TransitionArriveAtSellerHub, order.TransitionCancel},
		order.AtSellerHub:    {order.TransitionApproveAndDispatch, order.TransitionCancel},
		order.Shipped:        {order.TransitionArriveAtBuyerHub},
		order.OutForDelivery: {order.TransitionVerifyAndDeliver, order.TransitionResendOTP},
		order.Delivered:      {},
		order.Cancelled:      {},
	}
	every := []order.Transition{
		order.TransitionCreate,
		order.TransitionArriveAtSellerHub,
		order.TransitionApproveAndDispatch,
		order.TransitionArriveAtBuyerHub,
		order.TransitionResendOTP,
		order.TransitionVerifyAndDeliver,
		order.TransitionCancel,
	}

	for status, permitted := range allowed {
		for _, tr := range every {
			want := false
			for _, p := range permitted {
				if p == tr {
					want = true
				}
			}
			assert.Equal(t, want, status.CanApply(tr), "%s --%s-->", status, tr)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{
		order.Created, order.AtSellerHub, order.Shipped, order.OutForDelivery, order.Delivered, order.Cancelled,
	} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("unknown")
	require.Error(t, err)
	_, err = order.ParseStatus("pending")
	require.Error(t, err)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Shipped.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "unknown", order.Status(42).String())
}
