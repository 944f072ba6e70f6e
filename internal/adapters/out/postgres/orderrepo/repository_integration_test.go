package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hubflow/internal/adapters/out/postgres/orderrepo"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAggregate() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)
	o := suite.newOrder("ORD1746349200001")

	tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(repo.Add(ctx, o))
	suite.assertOrderCount(1)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumberFails() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("ORD1746349200002")))
	err := suite.repository.Add(ctx, suite.newOrder("ORD1746349200002"))

	suite.Require().Error(err)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsFullLifecycle() {
	ctx := context.Background()
	o := suite.newOrder("ORD1746349200003")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	seller := order.HubRef{ID: kernel.NewUUID(), Name: "Thrissur Central Hub", District: kernel.Thrissur}
	buyer := order.HubRef{ID: kernel.NewUUID(), Name: "Ernakulam Central Hub", District: kernel.Ernakulam, Fallback: true}
	otp, err := order.NewOTP("042917", t0.Add(3*time.Hour), order.DefaultOTPTTL)
	suite.Require().NoError(err)

	suite.Require().NoError(o.ArriveAtSellerHub(seller, "mgr-tcr", t0.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Require().NoError(o.ApproveAndDispatch("admin-1", buyer, t0.Add(2*time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Require().NoError(o.ArriveAtBuyerHub(otp, "mgr-ekm", t0.Add(3*time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.OutForDelivery, got.Status())
	suite.Equal(4, got.Version())
	suite.Equal(o.Items(), got.Items())
	suite.Equal(o.Totals(), got.Totals())
	suite.Equal(o.Buyer(), got.Buyer())
	suite.Equal(o.ShippingAddress(), got.ShippingAddress())

	tracking := got.Tracking()
	suite.Require().NotNil(tracking.SellerHub)
	suite.Require().NotNil(tracking.BuyerHub)
	suite.Equal(seller, *tracking.SellerHub)
	suite.Equal(buyer, *tracking.BuyerHub)
	suite.True(tracking.AdminApproved)
	suite.Equal("admin-1", tracking.ApprovedBy)
	suite.Equal(order.AtBuyerHubLocation, tracking.CurrentLocation)
	suite.Require().NotNil(tracking.ArrivedAtBuyerHubAt)
	suite.True(tracking.ArrivedAtBuyerHubAt.Equal(t0.Add(3 * time.Hour)))

	suite.Require().NotNil(got.OTP())
	suite.Equal("042917", got.OTP().Code())
	suite.True(got.OTP().ExpiresAt().Equal(t0.Add(27 * time.Hour)))
	suite.False(got.OTP().IsUsed())
	suite.Empty(got.Events(), "loaded orders carry no events")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	o := suite.newOrder("ORD1746349200004")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByNumber(ctx, "ORD1746349200004")
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())

	_, err = suite.repository.GetByNumber(ctx, "ORD0000000000000")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	o := suite.newOrder("ORD1746349200005")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.Cancel("buyer-1", "changed my mind", t0.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))
	suite.Equal(2, first.Version())

	suite.Require().NoError(second.ArriveAtSellerHub(
		order.HubRef{ID: kernel.NewUUID(), Name: "Thrissur Central Hub", District: kernel.Thrissur},
		"mgr-tcr", t0.Add(2*time.Minute)))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.Equal(1, second.Version(), "a rejected update leaves the version alone")

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal("changed my mind", stored.CancelReason())
}

// Two writers racing from the same version: exactly one wins.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWritersHaveOneWinner() {
	ctx := context.Background()
	o := suite.newOrder("ORD1746349200006")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   int
		conflicts int
	)
	for i := range writers {
		loaded, err := suite.repository.Get(ctx, o.ID())
		suite.Require().NoError(err)

		wg.Add(1)
		go func(n int, candidate *order.Order) {
			defer wg.Done()
			hubRef := order.HubRef{ID: kernel.NewUUID(), Name: "Thrissur Central Hub", District: kernel.Thrissur}
			if err := candidate.ArriveAtSellerHub(hubRef, "mgr-tcr", t0.Add(time.Duration(n)*time.Second)); err != nil {
				return
			}
			err := suite.repository.Update(ctx, candidate)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, errs.ErrConcurrentModification):
				conflicts++
			}
		}(i, loaded)
	}
	wg.Wait()

	suite.Equal(1, winners)
	suite.Equal(writers-1, conflicts)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string) *order.Order {
	shipping, err := kernel.NewAddress("12 Beach Road", "Ernakulam", "Kerala", "682001", "")
	suite.Require().NoError(err)
	seller, err := kernel.NewAddress("4 Market Street", "Thrissur", "Kerala", "680001", "near temple")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com", Phone: "+91 9000000001"},
		shipping,
		"seller-1",
		seller,
		[]order.LineItem{
			{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000},
			{ProductID: "p-2", Title: "Banana chips", Quantity: 1, UnitPrice: 12000},
		},
		5000,
		t0,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
