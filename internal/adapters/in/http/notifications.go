package http

import (
	"net/http"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListNotifications handles GET /api/v1/notifications for the calling principal.
func (s *Server) ListNotifications(ctx echo.Context, params servers.ListNotificationsParams) error {
	p, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	unreadOnly := params.UnreadOnly != nil && *params.UnreadOnly
	query, err := queries.NewListNotificationsQuery(p.Recipient(), unreadOnly, page(params.Limit, params.Offset))
	if err != nil {
		return badRequest(err)
	}

	inbox, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := servers.NotificationPage{
		Notifications: make([]servers.Notification, 0, len(inbox.Notifications)),
		Total:         inbox.Total,
		UnreadCount:   inbox.UnreadCount,
		Limit:         inbox.Page.Limit,
		Offset:        inbox.Page.Offset,
	}
	for _, n := range inbox.Notifications {
		response.Notifications = append(response.Notifications, toNotificationView(n))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) GetUnreadCount(ctx echo.Context) error {
	p, err := principalFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetUnreadCountQuery(p.Recipient())
	if err != nil {
		return badRequest(err)
	}

	count, err := s.h.GetUnreadCount.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.UnreadCount{UnreadCount: count})
}

// MarkNotificationRead handles PATCH /api/v1/notifications/{notificationId}/read.
// Another recipient's notification is reported as not found.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error {
	p, err := principalFrom(ctx)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(notificationId[:])
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewMarkNotificationReadCommand(id, p.Recipient())
	if err != nil {
		return badRequest(err)
	}

	n, err := s.h.MarkNotificationRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toNotification(n))
}

// MarkAllNotificationsRead handles PATCH /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	p, err := principalFrom(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkAllNotificationsReadCommand(p.Recipient())
	if err != nil {
		return badRequest(err)
	}

	updated, err := s.h.MarkAllNotificationsRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.MarkedRead{Updated: updated})
}
