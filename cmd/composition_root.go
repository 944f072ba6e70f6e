package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "hubflow/internal/adapters/in/http"
	"hubflow/internal/adapters/out/directory"
	"hubflow/internal/adapters/out/mail"
	"hubflow/internal/adapters/out/postgres"
	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/services"
	"hubflow/internal/core/ports"
	"hubflow/internal/jobs"
	"hubflow/internal/pkg/clock"

	"gorm.io/gorm"
)

// taskMaxAttempts parks an arrival task after this many failed runs.
const taskMaxAttempts = 5

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	resolver   services.DistrictResolver
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	resolver, err := services.NewDistrictResolver(cfg.DefaultDistrict)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("district resolver: %w", err)
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   resolver,
		clock:      clock.System{},
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) hubUoWFactory() commands.HubUoWFactory {
	return FuncHubUoWFactory(func() commands.HubUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) relayUoWFactory() commands.RelayUoWFactory {
	return FuncRelayUoWFactory(func() commands.RelayUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) otpGenerator() services.OTPGenerator {
	return services.NewOTPGenerator(c.cfg.OTPTTL)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateArriveAtSellerHubCommandHandler() commands.ArriveAtSellerHubCommandHandler {
	return commands.NewArriveAtSellerHubCommandHandler(c.orderUoWFactory(), c.resolver, c.clock, c.logger)
}

func (c *CompositionRoot) CreateApproveAndDispatchCommandHandler() commands.ApproveAndDispatchCommandHandler {
	return commands.NewApproveAndDispatchCommandHandler(
		c.orderUoWFactory(), c.resolver, c.cfg.ArrivalFallbackAfter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateArriveAtBuyerHubCommandHandler() commands.ArriveAtBuyerHubCommandHandler {
	return commands.NewArriveAtBuyerHubCommandHandler(c.orderUoWFactory(), c.otpGenerator(), c.clock)
}

func (c *CompositionRoot) CreateResendOTPCommandHandler() commands.ResendOTPCommandHandler {
	return commands.NewResendOTPCommandHandler(c.orderUoWFactory(), c.otpGenerator(), c.clock)
}

func (c *CompositionRoot) CreateVerifyAndDeliverCommandHandler() commands.VerifyAndDeliverCommandHandler {
	return commands.NewVerifyAndDeliverCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateHubCommandHandler() commands.CreateHubCommandHandler {
	return commands.NewCreateHubCommandHandler(c.hubUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeHubStatusCommandHandler() commands.ChangeHubStatusCommandHandler {
	return commands.NewChangeHubStatusCommandHandler(c.hubUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAssignHubManagerCommandHandler() commands.AssignHubManagerCommandHandler {
	return commands.NewAssignHubManagerCommandHandler(c.hubUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory(), c.clock)
}

// CreateProcessOutboxCommandHandler needs the admin directory and a mail
// transport, which only the serving process configures.
func (c *CompositionRoot) CreateProcessOutboxCommandHandler(ctx context.Context) (commands.ProcessOutboxCommandHandler, error) {
	admins, err := directory.NewStaticAdminDirectory(c.cfg.AdminIDs)
	if err != nil {
		return commands.ProcessOutboxCommandHandler{}, fmt.Errorf("admin directory: %w", err)
	}
	mailer, err := c.mailer(ctx)
	if err != nil {
		return commands.ProcessOutboxCommandHandler{}, err
	}

	return commands.NewProcessOutboxCommandHandler(
		c.relayUoWFactory(),
		admins,
		mailer,
		commands.RelaySettings{
			MaxAttempts: c.cfg.OutboxMaxAttempts,
			Concurrency: c.cfg.OutboxConcurrency,
		},
		c.clock,
		c.logger,
	), nil
}

func (c *CompositionRoot) mailer(ctx context.Context) (ports.Mailer, error) {
	if c.cfg.MailTransport != MailTransportSQS {
		return mail.NewLogMailer(c.logger), nil
	}
	client, err := mail.NewSQSClient(ctx, c.cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("sqs client: %w", err)
	}
	return mail.NewSQSMailer(client, c.cfg.SQSQueueURL)
}

func (c *CompositionRoot) CreateRunDueArrivalTasksCommandHandler() commands.RunDueArrivalTasksCommandHandler {
	return commands.NewRunDueArrivalTasksCommandHandler(
		c.orderUoWFactory(), c.CreateArriveAtBuyerHubCommandHandler(), taskMaxAttempts, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAwaitingApprovalQueryHandler() queries.ListAwaitingApprovalQueryHandler {
	return queries.NewListAwaitingApprovalQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListHubOrdersQueryHandler() queries.ListHubOrdersQueryHandler {
	return queries.NewListHubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListHubsQueryHandler() queries.ListHubsQueryHandler {
	return queries.NewListHubsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHubByDistrictQueryHandler() queries.GetHubByDistrictQueryHandler {
	return queries.NewGetHubByDistrictQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadCountQueryHandler() queries.GetUnreadCountQueryHandler {
	return queries.NewGetUnreadCountQueryHandler(c.gormDB)
}

// CreateHTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:              c.CreateCreateOrderCommandHandler(),
		ArriveAtSellerHub:        c.CreateArriveAtSellerHubCommandHandler(),
		ApproveAndDispatch:       c.CreateApproveAndDispatchCommandHandler(),
		ArriveAtBuyerHub:         c.CreateArriveAtBuyerHubCommandHandler(),
		ResendOTP:                c.CreateResendOTPCommandHandler(),
		VerifyAndDeliver:         c.CreateVerifyAndDeliverCommandHandler(),
		CancelOrder:              c.CreateCancelOrderCommandHandler(),
		CreateHub:                c.CreateCreateHubCommandHandler(),
		ChangeHubStatus:          c.CreateChangeHubStatusCommandHandler(),
		AssignHubManager:         c.CreateAssignHubManagerCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		MarkAllNotificationsRead: c.CreateMarkAllNotificationsReadCommandHandler(),

		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetOrderTracking:     c.CreateGetOrderTrackingQueryHandler(),
		ListAwaitingApproval: c.CreateListAwaitingApprovalQueryHandler(),
		ListHubOrders:        c.CreateListHubOrdersQueryHandler(),
		ListHubs:             c.CreateListHubsQueryHandler(),
		GetHubByDistrict:     c.CreateGetHubByDistrictQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
		GetUnreadCount:       c.CreateGetUnreadCountQueryHandler(),
	}
}

// CreateJobManager schedules the outbox relay and, when a fallback delay is
// configured, the arrival fallback.
func (c *CompositionRoot) CreateJobManager(ctx context.Context) (*jobs.JobManager, error) {
	relay, err := c.CreateProcessOutboxCommandHandler(ctx)
	if err != nil {
		return nil, err
	}

	var arrival jobs.ArrivalRunner
	if c.cfg.ArrivalFallbackAfter > 0 {
		arrival = c.CreateRunDueArrivalTasksCommandHandler()
	}

	return jobs.NewJobManager(relay, arrival, jobs.Settings{
		OutboxBatchSize: c.cfg.OutboxBatchSize,
		TaskBatchSize:   c.cfg.TaskBatchSize,
	}, c.logger), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncHubUoWFactory func() commands.HubUoW

func (f FuncHubUoWFactory) Create() commands.HubUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncRelayUoWFactory func() commands.RelayUoW

func (f FuncRelayUoWFactory) Create() commands.RelayUoW {
	return f()
}
