package http

import (
	"context"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/generated/servers"
)

// Handler is a command or query handler as the server calls it.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

func (f HandlerFunc[Req, Res]) Handle(ctx context.Context, req Req) (Res, error) {
	return f(ctx, req)
}

// Handlers are the use cases behind the API.
type Handlers struct {
	// Command handlers
	CreateOrder              Handler[commands.CreateOrderCommand, *order.Order]
	ArriveAtSellerHub        Handler[commands.ArriveAtSellerHubCommand, *order.Order]
	ApproveAndDispatch       Handler[commands.ApproveAndDispatchCommand, *order.Order]
	ArriveAtBuyerHub         Handler[commands.ArriveAtBuyerHubCommand, *order.Order]
	ResendOTP                Handler[commands.ResendOTPCommand, *order.Order]
	VerifyAndDeliver         Handler[commands.VerifyAndDeliverCommand, *order.Order]
	CancelOrder              Handler[commands.CancelOrderCommand, *order.Order]
	CreateHub                Handler[commands.CreateHubCommand, *hub.Hub]
	ChangeHubStatus          Handler[commands.ChangeHubStatusCommand, *hub.Hub]
	AssignHubManager         Handler[commands.AssignHubManagerCommand, *hub.Hub]
	MarkNotificationRead     Handler[commands.MarkNotificationReadCommand, *notification.Notification]
	MarkAllNotificationsRead Handler[commands.MarkAllNotificationsReadCommand, int64]

	// Query handlers
	GetOrder             Handler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetOrderTracking     Handler[queries.GetOrderTrackingQuery, queries.GetOrderTrackingQueryResponse]
	ListAwaitingApproval Handler[queries.ListAwaitingApprovalQuery, queries.ListAwaitingApprovalQueryResponse]
	ListHubOrders        Handler[queries.ListHubOrdersQuery, queries.ListHubOrdersQueryResponse]
	ListHubs             Handler[queries.ListHubsQuery, []queries.HubView]
	GetHubByDistrict     Handler[queries.GetHubByDistrictQuery, queries.HubView]
	ListNotifications    Handler[queries.ListNotificationsQuery, queries.ListNotificationsQueryResponse]
	GetUnreadCount       Handler[queries.GetUnreadCountQuery, int64]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}
