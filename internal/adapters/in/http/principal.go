package http

import (
	"net/http"
	"slices"
	"strings"

	"hubflow/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// Headers set by the auth gateway in front of the service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const principalKey = "principal"

// Principal is the authenticated caller.
type Principal struct {
	ID   string
	Role notification.Role
}

func (p Principal) Recipient() notification.Recipient {
	return notification.Recipient{ID: p.ID, Role: p.Role}
}

func (p Principal) Is(roles ...notification.Role) bool {
	return slices.Contains(roles, p.Role)
}

// managerScope is the manager id commands check against the order's hub.
// Admins act on any hub and get an empty scope.
func (p Principal) managerScope() string {
	if p.Role == notification.RoleHubManager {
		return p.ID
	}
	return ""
}

// buyerScope is the buyer id commands check against the order's buyer.
func (p Principal) buyerScope() string {
	if p.Role == notification.RoleBuyer {
		return p.ID
	}
	return ""
}

// publicRoutes may be read without a principal. Headers, when sent, are still checked.
var publicRoutes = map[string]string{
	"/api/v1/orders/:orderId/tracking": http.MethodGet,
}

// PrincipalMiddleware reads the caller from the gateway headers. Requests
// under /api without a valid principal are rejected with 401, except on
// publicRoutes.
func PrincipalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, "/api/") {
				return next(c)
			}

			id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if id == "" && c.Request().Header.Get(HeaderUserRole) == "" &&
				publicRoutes[c.Path()] == c.Request().Method {
				return next(c)
			}
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			}
			role, err := notification.ParseRole(strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderUserRole))))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderUserRole+" header").SetInternal(err)
			}

			c.Set(principalKey, Principal{ID: id, Role: role})
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, error) {
	p, ok := c.Get(principalKey).(Principal)
	if !ok {
		return Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return p, nil
}

// requireRole returns the principal when it holds one of roles.
func requireRole(c echo.Context, roles ...notification.Role) (Principal, error) {
	p, err := principalFrom(c)
	if err != nil {
		return Principal{}, err
	}
	if !p.Is(roles...) {
		return Principal{}, forbidden("role " + string(p.Role) + " may not perform this operation")
	}
	return p, nil
}
