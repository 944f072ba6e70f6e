package http

import (
	"errors"
	"net/http"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListHubs handles GET /api/v1/hubs.
func (s *Server) ListHubs(ctx echo.Context, params servers.ListHubsParams) error {
	if _, err := principalFrom(ctx); err != nil {
		return err
	}

	var (
		district *kernel.District
		status   *hub.Status
	)
	if params.District != nil {
		d, err := kernel.ParseDistrict(*params.District)
		if err != nil {
			return badRequest(err)
		}
		district = &d
	}
	if params.Status != nil {
		st, err := hub.ParseStatus(string(*params.Status))
		if err != nil {
			return badRequest(err)
		}
		status = &st
	}

	query, err := queries.NewListHubsQuery(district, status)
	if err != nil {
		return badRequest(err)
	}
	views, err := s.h.ListHubs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Hub, len(views))
	for i, v := range views {
		response[i] = toHubFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetHubByDistrict handles GET /api/v1/hubs/district/{district}.
func (s *Server) GetHubByDistrict(ctx echo.Context, district string) error {
	if _, err := principalFrom(ctx); err != nil {
		return err
	}
	d, err := kernel.ParseDistrict(district)
	if err != nil {
		return badRequest(err)
	}
	query, err := queries.NewGetHubByDistrictQuery(d)
	if err != nil {
		return badRequest(err)
	}

	view, err := s.h.GetHubByDistrict.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toHubFromView(view))
}

// ListHubOrders handles GET /api/v1/hubs/{hubId}/orders (hub manager dashboard).
func (s *Server) ListHubOrders(ctx echo.Context, hubId servers.HubId, params servers.ListHubOrdersParams) error {
	p, err := requireRole(ctx, notification.RoleHubManager, notification.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(hubId[:])
	if err != nil {
		return badRequest(err)
	}
	query, err := queries.NewListHubOrdersQuery(id, p.managerScope(), page(params.Limit, params.Offset))
	if err != nil {
		return badRequest(err)
	}

	res, err := s.h.ListHubOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.HubOrders{
		AwaitingApproval: toOrderSummaries(res.AwaitingApproval),
		Inbound:          toOrderSummaries(res.Inbound),
		ReadyForPickup:   toOrderSummaries(res.ReadyForPickup),
	})
}

// CreateHub handles POST /api/v1/hubs. New hubs are active unless the body says otherwise.
func (s *Server) CreateHub(ctx echo.Context) error {
	if _, err := requireRole(ctx, notification.RoleAdmin); err != nil {
		return err
	}

	var body servers.CreateHubJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := newCreateHubCommand(body)
	if err != nil {
		return badRequest(err)
	}

	h, err := s.h.CreateHub.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toHub(h))
}

func newCreateHubCommand(body servers.NewHub) (commands.CreateHubCommand, error) {
	district, errDistrict := kernel.ParseDistrict(body.District)
	address, errAddress := fromAddress(body.Address)
	location, errLocation := kernel.NewGeoLocation(float64(body.Location.Latitude), float64(body.Location.Longitude))

	hours := hub.DefaultOperatingHours()
	var errHours error
	if body.OpenTime != nil || body.CloseTime != nil || body.WorkingDays != nil {
		days := hours.WorkingDays()
		if body.WorkingDays != nil {
			days = *body.WorkingDays
		}
		open, closeAt := hours.Open(), hours.Close()
		if body.OpenTime != nil {
			open = *body.OpenTime
		}
		if body.CloseTime != nil {
			closeAt = *body.CloseTime
		}
		hours, errHours = hub.NewOperatingHours(open, closeAt, days)
	}

	status := hub.Active
	var errStatus error
	if body.Status != nil {
		status, errStatus = hub.ParseStatus(string(*body.Status))
	}

	if err := errors.Join(errDistrict, errAddress, errLocation, errHours, errStatus); err != nil {
		return commands.CreateHubCommand{}, err
	}

	var manager *hub.Manager
	if body.Manager != nil {
		manager = &hub.Manager{ID: body.Manager.ManagerId, Name: body.Manager.ManagerName}
	}

	return commands.NewCreateHubCommand(
		body.Code,
		body.Name,
		district,
		address,
		location,
		hub.Contact{Phone: value(body.Phone), Email: value(body.Email)},
		body.MaxOrders,
		hours,
		status,
		manager,
	)
}

// ChangeHubStatus handles PATCH /api/v1/hubs/{hubId}/status.
func (s *Server) ChangeHubStatus(ctx echo.Context, hubId servers.HubId) error {
	if _, err := requireRole(ctx, notification.RoleAdmin); err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(hubId[:])
	if err != nil {
		return badRequest(err)
	}

	var body servers.ChangeHubStatusJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}
	status, err := hub.ParseStatus(string(body.Status))
	if err != nil {
		return badRequest(err)
	}
	cmd, err := commands.NewChangeHubStatusCommand(id, status)
	if err != nil {
		return badRequest(err)
	}

	h, err := s.h.ChangeHubStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toHub(h))
}

// AssignHubManager handles PATCH /api/v1/hubs/{hubId}/manager.
func (s *Server) AssignHubManager(ctx echo.Context, hubId servers.HubId) error {
	if _, err := requireRole(ctx, notification.RoleAdmin); err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(hubId[:])
	if err != nil {
		return badRequest(err)
	}

	var body servers.AssignHubManagerJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewAssignHubManagerCommand(id, body.ManagerId, body.ManagerName)
	if err != nil {
		return badRequest(err)
	}

	h, err := s.h.AssignHubManager.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toHub(h))
}
