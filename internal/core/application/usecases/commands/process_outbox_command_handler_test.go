package commands_test

import (
	"errors"
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/outbox"
	"hubflow/internal/core/ports"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type relayUoW struct {
	uow           *MockUoW
	factory       *MockRelayUoWFactory
	outbox        *MockOutboxRepository
	notifications *MockNotificationRepository
	hubs          *MockHubRepository
	orders        *MockOrderRepository
	admins        *MockAdminDirectory
	mailer        *MockMailer
}

func newRelayUoW() relayUoW {
	w := relayUoW{
		uow:           &MockUoW{},
		factory:       &MockRelayUoWFactory{},
		outbox:        &MockOutboxRepository{},
		notifications: &MockNotificationRepository{},
		hubs:          &MockHubRepository{},
		orders:        &MockOrderRepository{},
		admins:        &MockAdminDirectory{},
		mailer:        &MockMailer{},
	}
	w.factory.On("Create").Return(w.uow)
	w.uow.On("OutboxRepository").Return(w.outbox).Maybe()
	w.uow.On("NotificationRepository").Return(w.notifications).Maybe()
	w.uow.On("HubRepository").Return(w.hubs).Maybe()
	w.uow.On("OrderRepository").Return(w.orders).Maybe()
	return w
}

func (w relayUoW) handler() commands.ProcessOutboxCommandHandler {
	return commands.NewProcessOutboxCommandHandler(
		w.factory, w.admins, w.mailer, commands.RelaySettings{MaxAttempts: 3, Concurrency: 1}, clk, logger,
	)
}

// arrivalEvent produces the arrive_at_buyer_hub event for an order routed
// from sellerHub to buyerHub, carrying code as the pickup code.
func arrivalEvent(t *testing.T, sellerHub, buyerHub *hub.Hub, code string) (*order.Order, order.Event) {
	t.Helper()
	o := shipped(t, sellerHub, buyerHub)
	otp, err := order.NewOTP(code, t0, order.DefaultOTPTTL)
	require.NoError(t, err)
	require.NoError(t, o.ArriveAtBuyerHub(otp, "mgr-klm", t0))
	events := o.Events()
	require.Len(t, events, 1)
	return o, events[0]
}

func TestProcessOutboxCommandHandler_Handle(t *testing.T) {
	sellerHub := newHub(t, "HUB-TSR-001", kernel.Thrissur, &hub.Manager{ID: "mgr-tsr"})
	buyerHub := newHub(t, "HUB-KLM-001", kernel.Kollam, &hub.Manager{ID: "mgr-klm"})
	cmd, err := commands.NewProcessOutboxCommand(10)
	require.NoError(t, err)

	t.Run("fans out notifications and emails the pickup code", func(t *testing.T) {
		ctx := t.Context()
		w := newRelayUoW()
		o, event := arrivalEvent(t, sellerHub, buyerHub, "482913")
		msg, err := outbox.NewMessage(event, t0)
		require.NoError(t, err)

		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{event.ID}, nil).Once()
		w.admins.On("AdminIDs", mock.Anything).Return([]string{"admin-1"}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Once()
		w.outbox.On("Claim", mock.Anything, event.ID).Return(msg, nil).Once()
		w.hubs.On("Get", mock.Anything, sellerHub.ID()).Return(sellerHub, nil).Once()
		w.hubs.On("Get", mock.Anything, buyerHub.ID()).Return(buyerHub, nil).Once()
		w.notifications.On("AddAll", mock.Anything, mock.Anything).Return(3, nil).Once()
		w.orders.On("GetForShare", mock.Anything, o.ID()).Return(o, nil).Once()
		w.mailer.On("SendPickupCode", mock.Anything, mock.MatchedBy(func(m ports.PickupCodeMail) bool {
			return m.To == "asha@example.com" && m.Code == "482913" && m.HubName == buyerHub.Name()
		})).Return(nil).Once()
		w.outbox.On("Update", mock.Anything, msg).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Once()

		result, err := w.handler().Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Processed: 1}, result)
		assert.Equal(t, outbox.Processed, msg.Status())
		w.notifications.AssertExpectations(t)
		w.mailer.AssertExpectations(t)

		ns := w.notifications.Calls[0].Arguments.Get(1).([]*notification.Notification)
		require.Len(t, ns, 3)
		for _, n := range ns {
			assert.NotContains(t, n.Content().Message, "482913")
		}
	})

	t.Run("a failed mail rolls back and records the attempt", func(t *testing.T) {
		ctx := t.Context()
		w := newRelayUoW()
		o, event := arrivalEvent(t, sellerHub, buyerHub, "482913")
		msg, err := outbox.NewMessage(event, t0)
		require.NoError(t, err)

		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{event.ID}, nil).Once()
		w.admins.On("AdminIDs", mock.Anything).Return([]string{"admin-1"}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Twice()
		w.outbox.On("Claim", mock.Anything, event.ID).Return(msg, nil).Twice()
		w.hubs.On("Get", mock.Anything, sellerHub.ID()).Return(sellerHub, nil).Once()
		w.hubs.On("Get", mock.Anything, buyerHub.ID()).Return(buyerHub, nil).Once()
		w.notifications.On("AddAll", mock.Anything, mock.Anything).Return(3, nil).Once()
		w.orders.On("GetForShare", mock.Anything, o.ID()).Return(o, nil).Once()
		w.mailer.On("SendPickupCode", mock.Anything, mock.Anything).Return(errors.New("queue unavailable")).Once()
		w.outbox.On("Update", mock.Anything, msg).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Twice()

		result, err := w.handler().Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Failed: 1}, result)
		assert.Equal(t, outbox.Pending, msg.Status())
		assert.Equal(t, 1, msg.Attempts())
		assert.Contains(t, msg.LastError(), "queue unavailable")
		w.uow.AssertExpectations(t)
	})

	t.Run("a code replaced by a resend is not mailed", func(t *testing.T) {
		ctx := t.Context()
		w := newRelayUoW()
		o, arrived := arrivalEvent(t, sellerHub, buyerHub, "111111")
		fresh, err := order.NewOTP("222222", t0, order.DefaultOTPTTL)
		require.NoError(t, err)
		require.NoError(t, o.ReissueOTP(fresh, "mgr-klm", t0))
		events := o.Events()
		require.Len(t, events, 2)
		resent := events[1]

		// The arrival message failed its first attempt and is retried after the resend.
		resentMsg, err := outbox.NewMessage(resent, t0)
		require.NoError(t, err)
		arrivedMsg, err := outbox.NewMessage(arrived, t0)
		require.NoError(t, err)

		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{resent.ID, arrived.ID}, nil).Once()
		w.admins.On("AdminIDs", mock.Anything).Return([]string{"admin-1"}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Twice()
		w.outbox.On("Claim", mock.Anything, resent.ID).Return(resentMsg, nil).Once()
		w.outbox.On("Claim", mock.Anything, arrived.ID).Return(arrivedMsg, nil).Once()
		w.hubs.On("Get", mock.Anything, sellerHub.ID()).Return(sellerHub, nil).Twice()
		w.hubs.On("Get", mock.Anything, buyerHub.ID()).Return(buyerHub, nil).Twice()
		w.notifications.On("AddAll", mock.Anything, mock.Anything).Return(1, nil).Twice()
		w.orders.On("GetForShare", mock.Anything, o.ID()).Return(o, nil).Twice()
		w.mailer.On("SendPickupCode", mock.Anything, mock.MatchedBy(func(m ports.PickupCodeMail) bool {
			return m.Code == "222222"
		})).Return(nil).Once()
		w.outbox.On("Update", mock.Anything, resentMsg).Return(nil).Once()
		w.outbox.On("Update", mock.Anything, arrivedMsg).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Twice()
		w.uow.On("Rollback", mock.Anything).Return(nil).Twice()

		result, err := w.handler().Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Processed: 2}, result)
		assert.Equal(t, outbox.Processed, arrivedMsg.Status())
		w.mailer.AssertNumberOfCalls(t, "SendPickupCode", 1)
		w.mailer.AssertExpectations(t)
	})

	t.Run("a used code is not mailed", func(t *testing.T) {
		ctx := t.Context()
		w := newRelayUoW()
		o, event := arrivalEvent(t, sellerHub, buyerHub, "482913")
		require.NoError(t, o.VerifyAndDeliver("482913", "buyer-1", t0))
		msg, err := outbox.NewMessage(event, t0)
		require.NoError(t, err)

		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{event.ID}, nil).Once()
		w.admins.On("AdminIDs", mock.Anything).Return([]string{"admin-1"}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Once()
		w.outbox.On("Claim", mock.Anything, event.ID).Return(msg, nil).Once()
		w.hubs.On("Get", mock.Anything, sellerHub.ID()).Return(sellerHub, nil).Once()
		w.hubs.On("Get", mock.Anything, buyerHub.ID()).Return(buyerHub, nil).Once()
		w.notifications.On("AddAll", mock.Anything, mock.Anything).Return(3, nil).Once()
		w.orders.On("GetForShare", mock.Anything, o.ID()).Return(o, nil).Once()
		w.outbox.On("Update", mock.Anything, msg).Return(nil).Once()
		w.uow.On("Commit", mock.Anything).Return(nil).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Once()

		result, err := w.handler().Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Processed: 1}, result)
		w.mailer.AssertNotCalled(t, "SendPickupCode", mock.Anything, mock.Anything)
	})

	t.Run("a message claimed elsewhere is skipped", func(t *testing.T) {
		ctx := t.Context()
		w := newRelayUoW()
		id := kernel.NewUUID()

		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{id}, nil).Once()
		w.admins.On("AdminIDs", mock.Anything).Return([]string{"admin-1"}, nil).Once()
		w.uow.On("Begin", mock.Anything).Return(nil).Once()
		w.outbox.On("Claim", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("outbox message", id)).Once()
		w.uow.On("Rollback", mock.Anything).Return(nil).Once()

		result, err := w.handler().Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Skipped: 1}, result)
		w.notifications.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	})

	t.Run("nothing pending", func(t *testing.T) {
		w := newRelayUoW()
		w.outbox.On("ListPending", mock.Anything, 10).Return([]kernel.UUID{}, nil).Once()

		result, err := w.handler().Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Zero(t, result)
		w.admins.AssertNotCalled(t, "AdminIDs", mock.Anything)
	})
}
