package http

import (
	"errors"
	"net/http"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. Buyers may only order for themselves.
func (s *Server) CreateOrder(ctx echo.Context) error {
	p, err := requireRole(ctx, notification.RoleBuyer, notification.RoleAdmin)
	if err != nil {
		return err
	}

	var body servers.CreateOrderJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}
	if p.Role == notification.RoleBuyer && body.Buyer.Id != p.ID {
		return forbidden("buyers may only place their own orders")
	}

	shipping, errShipping := fromAddress(body.ShippingAddress)
	seller, errSeller := fromAddress(body.SellerAddress)
	if err = errors.Join(errShipping, errSeller); err != nil {
		return badRequest(err)
	}
	var fee int64
	if body.ShippingFee != nil {
		fee = *body.ShippingFee
	}

	cmd, err := commands.NewCreateOrderCommand(
		order.Buyer{
			ID:    body.Buyer.Id,
			Name:  body.Buyer.Name,
			Email: string(body.Buyer.Email),
			Phone: value(body.Buyer.Phone),
		},
		shipping,
		body.SellerId,
		seller,
		fromLineItems(body.Items),
		fee,
	)
	if err != nil {
		return badRequest(err)
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusCreated, o.ID())
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	if _, err := principalFrom(ctx); err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking. It needs no
// principal; the view carries no pickup code and no buyer contact.
func (s *Server) GetOrderTracking(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	query, err := queries.NewGetOrderTrackingQuery(id)
	if err != nil {
		return badRequest(err)
	}

	tracking, err := s.h.GetOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toTracking(tracking))
}

// ListAwaitingApproval handles GET /api/v1/orders/awaiting-approval (admin dashboard).
func (s *Server) ListAwaitingApproval(ctx echo.Context, params servers.ListAwaitingApprovalParams) error {
	if _, err := requireRole(ctx, notification.RoleAdmin); err != nil {
		return err
	}

	query := queries.NewListAwaitingApprovalQuery(page(params.Limit, params.Offset))
	res, err := s.h.ListAwaitingApproval.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.OrderPage{
		Orders: toOrderSummaries(res.Orders),
		Total:  res.Total,
	})
}

// ArriveAtSellerHub handles POST /api/v1/orders/{orderId}/arrive-seller-hub.
func (s *Server) ArriveAtSellerHub(ctx echo.Context, orderId servers.OrderId) error {
	p, err := requireRole(ctx, notification.RoleSeller, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewArriveAtSellerHubCommand(id, p.ID)
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.ArriveAtSellerHub.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// ApproveAndDispatch handles PATCH /api/v1/orders/{orderId}/approve-dispatch.
func (s *Server) ApproveAndDispatch(ctx echo.Context, orderId servers.OrderId) error {
	p, err := requireRole(ctx, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewApproveAndDispatchCommand(id, p.ID)
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.ApproveAndDispatch.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// ArriveAtBuyerHub handles POST /api/v1/orders/{orderId}/arrive-buyer-hub.
func (s *Server) ArriveAtBuyerHub(ctx echo.Context, orderId servers.OrderId) error {
	p, err := requireRole(ctx, notification.RoleHubManager, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewArriveAtBuyerHubCommand(id, p.ID, p.managerScope())
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.ArriveAtBuyerHub.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// ResendOtp handles POST /api/v1/orders/{orderId}/resend-otp. The new code
// goes out by email, so the response carries nothing.
func (s *Server) ResendOtp(ctx echo.Context, orderId servers.OrderId) error {
	p, err := requireRole(ctx, notification.RoleHubManager, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewResendOTPCommand(id, p.ID, p.managerScope())
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.ResendOTP.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusAccepted)
}

// VerifyOtp handles POST /api/v1/orders/{orderId}/verify-otp. Buyers verify
// their own orders; managers verify orders at their hub.
func (s *Server) VerifyOtp(ctx echo.Context, orderId servers.OrderId) error {
	p, err := requireRole(ctx, notification.RoleBuyer, notification.RoleHubManager, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}

	var body servers.VerifyOtpJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewVerifyAndDeliverCommand(id, body.Otp, p.ID, p.managerScope(), p.buyerScope())
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.VerifyAndDeliver.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	p, err := principalFrom(ctx)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(err)
	}

	var body servers.CancelOrderJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(id, p.ID, body.Reason)
	if err != nil {
		return badRequest(err)
	}

	if _, err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, id)
}

// respondOrder writes the order as the read side sees it after the command,
// which keeps the pickup code out of every response.
func (s *Server) respondOrder(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toOrder(view))
}

func page(limit, offset *int) queries.Page {
	var p queries.Page
	if limit != nil {
		p.Limit = *limit
	}
	if offset != nil {
		p.Offset = *offset
	}
	return p
}
