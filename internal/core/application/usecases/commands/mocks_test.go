package commands_test

import (
	"context"
	"testing"
	"time"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/outbox"
	"hubflow/internal/core/domain/model/task"
	"hubflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForShare(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHubRepository struct{ mock.Mock }

func (m *MockHubRepository) Add(ctx context.Context, h *hub.Hub) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHubRepository) Update(ctx context.Context, h *hub.Hub) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.Hub), args.Error(1)
}

func (m *MockHubRepository) ListActiveByDistrict(ctx context.Context, d kernel.District) ([]*hub.Hub, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hub.Hub), args.Error(1)
}

func (m *MockHubRepository) RecordArrival(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHubRepository) RecordDispatch(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHubRepository) RecordDelivery(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHubRepository) ReleaseSlot(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) ListDue(ctx context.Context, kind task.Kind, now time.Time, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, kind, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockTaskRepository) Claim(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) CancelPending(
	ctx context.Context,
	orderID kernel.UUID,
	kind task.Kind,
	reason string,
	now time.Time,
) error {
	args := m.Called(ctx, orderID, kind, reason, now)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddAll(ctx context.Context, ns []*notification.Notification) (int, error) {
	args := m.Called(ctx, ns)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(
	ctx context.Context,
	recipient notification.Recipient,
	now time.Time,
) (int64, error) {
	args := m.Called(ctx, recipient, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockOutboxRepository) Claim(ctx context.Context, id kernel.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockUoW implements every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HubRepository() ports.HubRepository {
	args := m.Called()
	return args.Get(0).(ports.HubRepository)
}

func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockHubUoWFactory struct{ mock.Mock }

func (m *MockHubUoWFactory) Create() commands.HubUoW {
	args := m.Called()
	return args.Get(0).(commands.HubUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockRelayUoWFactory struct{ mock.Mock }

func (m *MockRelayUoWFactory) Create() commands.RelayUoW {
	args := m.Called()
	return args.Get(0).(commands.RelayUoW)
}

type MockAdminDirectory struct{ mock.Mock }

func (m *MockAdminDirectory) AdminIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendPickupCode(ctx context.Context, mail ports.PickupCodeMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

// orderUoW wires a MockUoW with the three order-side repositories.
type orderUoW struct {
	uow     *MockUoW
	factory *MockOrderUoWFactory
	orders  *MockOrderRepository
	hubs    *MockHubRepository
	tasks   *MockTaskRepository
}

func newOrderUoW() orderUoW {
	w := orderUoW{
		uow:     &MockUoW{},
		factory: &MockOrderUoWFactory{},
		orders:  &MockOrderRepository{},
		hubs:    &MockHubRepository{},
		tasks:   &MockTaskRepository{},
	}
	w.factory.On("Create").Return(w.uow)
	w.uow.On("OrderRepository").Return(w.orders).Maybe()
	w.uow.On("HubRepository").Return(w.hubs).Maybe()
	w.uow.On("TaskRepository").Return(w.tasks).Maybe()
	return w
}

func (w orderUoW) assertExpectations(t *testing.T) {
	t.Helper()
	w.uow.AssertExpectations(t)
	w.orders.AssertExpectations(t)
	w.hubs.AssertExpectations(t)
	w.tasks.AssertExpectations(t)
}

func mustAddress(t *testing.T, street, city string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(street, city, "Kerala", "680001", "")
	require.NoError(t, err)
	return a
}

func newHub(t *testing.T, code string, district kernel.District, manager *hub.Manager) *hub.Hub {
	t.Helper()
	location, err := kernel.NewGeoLocation(10.5, 76.2)
	require.NoError(t, err)
	h, err := hub.RestoreHub(kernel.NewUUID(), code, district.String()+" Central Hub", district,
		mustAddress(t, "Central Hub Location", district.String()), location, hub.Contact{}, manager,
		hub.Capacity{MaxOrders: 1000}, hub.Stats{}, hub.DefaultOperatingHours(), hub.Active, t0, t0)
	require.NoError(t, err)
	return h
}

func ref(h *hub.Hub) order.HubRef {
	return order.HubRef{ID: h.ID(), Name: h.Name(), District: h.District()}
}

// newOrder creates an order sold from Thrissur to Kollam.
func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD1746349200123001",
		order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com"},
		mustAddress(t, "7 Beach Road", "Kollam"),
		"seller-1",
		mustAddress(t, "14 Temple Road", "Thrissur"),
		[]order.LineItem{{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000}},
		5000, t0,
	)
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

func atSellerHub(t *testing.T, sellerHub *hub.Hub) *order.Order {
	t.Helper()
	o := newOrder(t)
	require.NoError(t, o.ArriveAtSellerHub(ref(sellerHub), "seller-1", t0))
	o.ClearEvents()
	return o
}

func shipped(t *testing.T, sellerHub, buyerHub *hub.Hub) *order.Order {
	t.Helper()
	o := atSellerHub(t, sellerHub)
	require.NoError(t, o.ApproveAndDispatch("admin-1", ref(buyerHub), t0))
	o.ClearEvents()
	return o
}

func outForDelivery(t *testing.T, sellerHub, buyerHub *hub.Hub, code string) *order.Order {
	t.Helper()
	o := shipped(t, sellerHub, buyerHub)
	otp, err := order.NewOTP(code, t0, order.DefaultOTPTTL)
	require.NoError(t, err)
	require.NoError(t, o.ArriveAtBuyerHub(otp, "mgr-klm", t0))
	o.ClearEvents()
	return o
}
