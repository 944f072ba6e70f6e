package order_test

import (
	"testing"
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func newAddress(t *testing.T, street, city string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(street, city, "Kerala", "", "")
	require.NoError(t, err)
	return a
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD1746349200123",
		order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com"},
		newAddress(t, "12 Beach Road", "Kozhikode"),
		"seller-1",
		newAddress(t, "4 Market Street", "Thrissur"),
		[]order.LineItem{
			{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000},
			{ProductID: "p-2", Title: "Banana chips", Quantity: 1, UnitPrice: 12000},
		},
		5000,
		t0,
	)
	require.NoError(t, err)
	return o
}

func hubRef(district kernel.District) order.HubRef {
	return order.HubRef{ID: kernel.NewUUID(), Name: district.String() + " Central Hub", District: district}
}

func newOTP(t *testing.T, code string, at time.Time) order.OTP {
	t.Helper()
	otp, err := order.NewOTP(code, at, order.DefaultOTPTTL)
	require.NoError(t, err)
	return otp
}

// outForDelivery drives a fresh order to OutForDelivery with code 123456 issued at t0+3h.
func outForDelivery(t *testing.T) *order.Order {
	t.Helper()
	o := newTestOrder(t)
	require.NoError(t, o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "mgr-thrissur", t0.Add(time.Hour)))
	require.NoError(t, o.ApproveAndDispatch("admin-1", hubRef(kernel.Kozhikode), t0.Add(2*time.Hour)))
	require.NoError(t, o.ArriveAtBuyerHub(newOTP(t, "123456", t0.Add(3*time.Hour)), "mgr-kozhikode", t0.Add(3*time.Hour)))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes totals and starts at the seller", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, order.Totals{Items: 102000, Shipping: 5000, Final: 107000}, o.Totals())
		assert.Equal(t, order.AtSeller, o.Tracking().CurrentLocation)
		assert.Equal(t, 1, o.Version())
		assert.Nil(t, o.OTP())

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.TransitionCreate, events[0].Transition)
		assert.Equal(t, "seller-1", events[0].Snapshot.SellerID)
	})

	t.Run("joins validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "12345", order.Buyer{}, kernel.Address{}, " ",
			kernel.Address{}, nil, -1, t0)

		require.Error(t, err)
		assert.Nil(t, o)
		for _, fragment := range []string{"UUID", "order number", "buyer id", "shipping address", "seller id", "seller address", "line items"} {
			assert.Contains(t, err.Error(), fragment)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD1", order.Buyer{ID: "b"},
			newAddress(t, "x", "Kollam"), "s", newAddress(t, "y", "Kollam"),
			[]order.LineItem{{ProductID: "p", Quantity: 0, UnitPrice: 1}}, 0, t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ArriveAtSellerHub(t *testing.T) {
	t.Run("moves to the seller hub", func(t *testing.T) {
		o := newTestOrder(t)
		ref := hubRef(kernel.Thrissur)

		require.NoError(t, o.ArriveAtSellerHub(ref, "mgr-thrissur", t0.Add(time.Hour)))

		tracking := o.Tracking()
		assert.Equal(t, order.AtSellerHub, o.Status())
		assert.Equal(t, ref, *tracking.SellerHub)
		assert.Equal(t, t0.Add(time.Hour), *tracking.ArrivedAtSellerHubAt)
		assert.Equal(t, order.AtSellerHubLocation, tracking.CurrentLocation)
		assert.True(t, o.IsAwaitingApproval())
	})

	t.Run("fails from any other status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "m", t0))

		err := o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "m", t0)

		var stateErr *order.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, order.AtSellerHub, stateErr.Current)
		assert.Equal(t, order.TransitionArriveAtSellerHub, stateErr.Attempted)
	})

	t.Run("rejects an empty hub reference without mutating", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ArriveAtSellerHub(order.HubRef{}, "m", t0)

		require.Error(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Tracking().SellerHub)
	})
}

func TestOrder_ApproveAndDispatch(t *testing.T) {
	t.Run("assigns the buyer hub and ships", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "m", t0))
		buyerHub := hubRef(kernel.Kozhikode)
		buyerHub.Fallback = true

		require.NoError(t, o.ApproveAndDispatch("admin-1", buyerHub, t0.Add(time.Hour)))

		tracking := o.Tracking()
		assert.Equal(t, order.Shipped, o.Status())
		assert.True(t, tracking.AdminApproved)
		assert.Equal(t, "admin-1", tracking.ApprovedBy)
		assert.Equal(t, buyerHub, *tracking.BuyerHub)
		assert.Equal(t, order.InTransitToBuyerHub, tracking.CurrentLocation)
		assert.False(t, o.IsAwaitingApproval())
	})

	t.Run("second approval is a state error", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "m", t0))
		require.NoError(t, o.ApproveAndDispatch("admin-1", hubRef(kernel.Kozhikode), t0))

		err := o.ApproveAndDispatch("admin-2", hubRef(kernel.Kannur), t0)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, "admin-1", o.Tracking().ApprovedBy)
		assert.Equal(t, kernel.Kozhikode, o.Tracking().BuyerHub.District)
	})

	t.Run("cannot approve an order still at the seller", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ApproveAndDispatch("admin-1", hubRef(kernel.Kozhikode), t0)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Tracking().BuyerHub)
	})

	t.Run("requires an approver", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ArriveAtSellerHub(hubRef(kernel.Thrissur), "m", t0))

		err := o.ApproveAndDispatch(" ", hubRef(kernel.Kozhikode), t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.AtSellerHub, o.Status())
	})
}

func TestOrder_ArriveAtBuyerHub(t *testing.T) {
	o := outForDelivery(t)

	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.Equal(t, order.AtBuyerHubLocation, o.Tracking().CurrentLocation)
	require.NotNil(t, o.OTP())
	assert.Equal(t, t0.Add(27*time.Hour), o.OTP().ExpiresAt())

	events := o.Events()
	last := events[len(events)-1]
	assert.Equal(t, order.TransitionArriveAtBuyerHub, last.Transition)
	assert.True(t, last.HasOTP())
	assert.Equal(t, "123456", last.Snapshot.OTPCode)

	err := o.ArriveAtBuyerHub(newOTP(t, "654321", t0), "m", t0)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, "123456", o.OTP().Code())
}

func TestOrder_VerifyAndDeliver(t *testing.T) {
	t.Run("delivers with the right code", func(t *testing.T) {
		o := outForDelivery(t)
		at := t0.Add(5 * time.Hour)

		require.NoError(t, o.VerifyAndDeliver("123456", "mgr-kozhikode", at))

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.OTP().IsUsed())
		assert.Equal(t, at, *o.OTP().UsedAt())
		assert.Equal(t, at, *o.Tracking().DeliveredAt)
		assert.Equal(t, order.DeliveredLocation, o.Tracking().CurrentLocation)
	})

	t.Run("second verification reports the code as used", func(t *testing.T) {
		o := outForDelivery(t)
		require.NoError(t, o.VerifyAndDeliver("123456", "m", t0.Add(4*time.Hour)))

		err := o.VerifyAndDeliver("123456", "m", t0.Add(4*time.Hour))

		var otpErr *order.OtpError
		require.ErrorAs(t, err, &otpErr)
		assert.Equal(t, order.OtpAlreadyUsed, otpErr.Kind)
		assert.False(t, otpErr.Retryable())
	})

	failures := []struct {
		name      string
		candidate string
		at        time.Time
		kind      order.OtpErrorKind
		sentinel  error
	}{
		{name: "wrong code", candidate: "000000", at: t0.Add(4 * time.Hour), kind: order.OtpMismatch, sentinel: order.ErrOtpMismatch},
		{name: "short code", candidate: "1234", at: t0.Add(4 * time.Hour), kind: order.OtpMismatch, sentinel: order.ErrOtpMismatch},
		{name: "after expiry", candidate: "123456", at: t0.Add(28 * time.Hour), kind: order.OtpExpired, sentinel: order.ErrOtpExpired},
	}
	for _, tc := range failures {
		t.Run(tc.name+" leaves the order untouched", func(t *testing.T) {
			o := outForDelivery(t)
			eventsBefore := len(o.Events())
			versionBefore := o.Version()

			err := o.VerifyAndDeliver(tc.candidate, "m", tc.at)

			var otpErr *order.OtpError
			require.ErrorAs(t, err, &otpErr)
			assert.Equal(t, tc.kind, otpErr.Kind)
			require.ErrorIs(t, err, tc.sentinel)
			assert.Equal(t, order.OutForDelivery, o.Status())
			assert.False(t, o.OTP().IsUsed())
			assert.Nil(t, o.Tracking().DeliveredAt)
			assert.Len(t, o.Events(), eventsBefore)
			assert.Equal(t, versionBefore, o.Version())
		})
	}

	t.Run("expiry boundary is inclusive", func(t *testing.T) {
		o := outForDelivery(t)

		require.NoError(t, o.VerifyAndDeliver("123456", "m", o.OTP().ExpiresAt()))
	})

	t.Run("order not yet at buyer hub is the wrong state", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.VerifyAndDeliver("123456", "m", t0)

		var otpErr *order.OtpError
		require.ErrorAs(t, err, &otpErr)
		assert.Equal(t, order.WrongState, otpErr.Kind)
		assert.Equal(t, order.Created, otpErr.Status)
	})
}

func TestOrder_ReissueOTP(t *testing.T) {
	t.Run("old code stops working", func(t *testing.T) {
		o := outForDelivery(t)
		at := t0.Add(10 * time.Hour)

		require.NoError(t, o.ReissueOTP(newOTP(t, "999111", at), "mgr", at))

		var otpErr *order.OtpError
		require.ErrorAs(t, o.VerifyAndDeliver("123456", "m", at), &otpErr)
		assert.Equal(t, order.OtpMismatch, otpErr.Kind)
		require.NoError(t, o.VerifyAndDeliver("999111", "m", at.Add(time.Minute)))
	})

	t.Run("is refused once delivered", func(t *testing.T) {
		o := outForDelivery(t)
		require.NoError(t, o.VerifyAndDeliver("123456", "m", t0.Add(4*time.Hour)))

		err := o.ReissueOTP(newOTP(t, "999111", t0), "mgr", t0)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("from created releases nothing", func(t *testing.T) {
		o := newTestOrder(t)

		released, err := o.Cancel("buyer-1", " changed my mind ", t0)

		require.NoError(t, err)
		assert.Nil(t, released)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "changed my mind", o.CancelReason())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("from seller hub releases the seller hub", func(t *testing.T) {
		o := newTestOrder(t)
		ref := hubRef(kernel.Thrissur)
		require.NoError(t, o.ArriveAtSellerHub(ref, "m", t0))

		released, err := o.Cancel("admin-1", "", t0)

		require.NoError(t, err)
		require.NotNil(t, released)
		assert.Equal(t, ref.ID, released.ID)
	})

	t.Run("after dispatch is a state error", func(t *testing.T) {
		o := outForDelivery(t)

		_, err := o.Cancel("buyer-1", "", t0)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})
}

func TestOrder_Events(t *testing.T) {
	o := outForDelivery(t)

	transitions := make([]order.Transition, 0)
	for _, e := range o.Events() {
		transitions = append(transitions, e.Transition)
		assert.True(t, e.OrderID.IsEqual(o.ID()))
	}
	assert.Equal(t, []order.Transition{
		order.TransitionCreate,
		order.TransitionArriveAtSellerHub,
		order.TransitionApproveAndDispatch,
		order.TransitionArriveAtBuyerHub,
	}, transitions)

	o.ClearEvents()
	assert.Empty(t, o.Events())
}

func TestRestoreOrder(t *testing.T) {
	base := func(t *testing.T) order.State {
		return order.State{
			ID:              kernel.NewUUID(),
			Number:          "ORD42",
			Buyer:           order.Buyer{ID: "buyer-1"},
			ShippingAddress: newAddress(t, "1 Main Road", "Kannur"),
			SellerID:        "seller-1",
			SellerAddress:   newAddress(t, "2 Main Road", "Kollam"),
			Items:           []order.LineItem{{ProductID: "p", Quantity: 1, UnitPrice: 100}},
			Totals:          order.Totals{Items: 100, Final: 100},
			Status:          order.Created,
			Version:         3,
			CreatedAt:       t0,
			UpdatedAt:       t0,
		}
	}

	t.Run("restores without raising events", func(t *testing.T) {
		o, err := order.RestoreOrder(base(t))

		require.NoError(t, err)
		assert.Equal(t, 3, o.Version())
		assert.Empty(t, o.Events())
		o.BumpVersion()
		assert.Equal(t, 4, o.Version())
	})

	inconsistent := []struct {
		name   string
		mutate func(s *order.State)
	}{
		{name: "seller hub status without seller hub", mutate: func(s *order.State) { s.Status = order.AtSellerHub }},
		{name: "shipped without buyer hub", mutate: func(s *order.State) {
			s.Status = order.Shipped
			ref := hubRef(kernel.Kollam)
			s.Tracking.SellerHub = &ref
			s.Tracking.AdminApproved = true
		}},
		{name: "out for delivery without otp", mutate: func(s *order.State) {
			s.Status = order.OutForDelivery
			seller, buyer := hubRef(kernel.Kollam), hubRef(kernel.Kannur)
			s.Tracking.SellerHub, s.Tracking.BuyerHub = &seller, &buyer
			s.Tracking.AdminApproved = true
		}},
		{name: "zero version", mutate: func(s *order.State) { s.Version = 0 }},
		{name: "unknown status", mutate: func(s *order.State) { s.Status = order.Unknown }},
	}
	for _, tc := range inconsistent {
		t.Run(tc.name, func(t *testing.T) {
			s := base(t)
			tc.mutate(&s)

			o, err := order.RestoreOrder(s)

			require.Error(t, err)
			assert.Nil(t, o)
		})
	}
}
